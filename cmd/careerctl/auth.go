package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edu2job/edu2job-server/internal/client"
)

func newRegisterCmd(flags *globalFlags) *cobra.Command {
	req := client.RegisterRequest{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := flags.newClient()
			if err != nil {
				return err
			}
			userID, err := c.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			cmd.Printf("Registration successful (user id %s). You can now log in.\n", userID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "password")
	cmd.Flags().StringVar(&req.College, "college", "", "college")
	cmd.Flags().StringVar(&req.Gender, "gender", "", "gender")
	cmd.Flags().StringVar(&req.Degree, "degree", "", "degree")

	return cmd
}

func newLoginCmd(flags *globalFlags) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := flags.newClient()
			if err != nil {
				return err
			}
			sess, err := c.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			cmd.Printf("Welcome, %s!\n", sess.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")

	return cmd
}

func newLogoutCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := flags.newClient()
			if err != nil {
				return err
			}
			if err := c.Logout(); err != nil {
				return fmt.Errorf("logout failed: %w", err)
			}
			cmd.Println("Logged out.")
			return nil
		},
	}
}
