package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msanchezgrice/vibecockpit-sub001/internal/apiclient"
)

var serverCmd = &cobra.Command{
	Use:   "server [url]",
	Short: "Set the API server URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := apiclient.NewClient()
		if err != nil {
			return err
		}
		if err := client.SetServer(args[0]); err != nil {
			return err
		}
		fmt.Printf("✓ Server set to %s\n", args[0])
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := apiclient.NewClient()
		if err != nil {
			return err
		}

		reader := bufio.NewReader(os.Stdin)

		fmt.Print("Username: ")
		username, _ := reader.ReadString('\n')
		username = strings.TrimSpace(username)

		fmt.Print("Password: ")
		password, _ := reader.ReadString('\n')
		password = strings.TrimSpace(password)

		if err := client.Login(username, password); err != nil {
			return err
		}

		fmt.Printf("✓ Logged in as %s\n", username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := apiclient.NewClient()
		if err != nil {
			return err
		}
		if err := client.Logout(); err != nil {
			return err
		}
		fmt.Println("✓ Logged out")
		return nil
	},
}
