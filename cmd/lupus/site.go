// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/werewolves/lupus/internal/config"
	"github.com/werewolves/lupus/internal/db"
	"github.com/werewolves/lupus/internal/sites"
	"github.com/werewolves/lupus/internal/themes"
	"github.com/werewolves/lupus/internal/users"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Manage sites",
	Long:  "Create, list, and manage sites",
}

var siteCreateCmd = &cobra.Command{
	Use:   "create <subdomain>",
	Short: "Create a new site",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := initSystemDB(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		subdomain := args[0]
		ownerEmail, _ := cmd.Flags().GetString("owner")

		if ownerEmail == "" {
			fmt.Fprintf(os.Stderr, "Error: --owner flag is required\n")
			os.Exit(1)
		}

		// Get owner user
		owner, err := users.GetUserByEmail(db.GetDB(), ownerEmail)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: owner user not found: %v\n", err)
			os.Exit(1)
		}

		site, err := sites.CreateSite(db.GetDB(), subdomain, owner.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating site: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Site created: %s (ID: %d)\n", site.Subdomain, site.ID)
		if base := config.GetString("server.base_domain"); base != "" {
			fmt.Printf("Address: http://%s.%s/\n", site.Subdomain, base)
		}
	},
}

var siteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sites",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initSystemDB(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		siteList, err := sites.ListSites(db.GetDB())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing sites: %v\n", err)
			os.Exit(1)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSUBDOMAIN\tCUSTOM DOMAIN\tOWNER\tCREATED")
		for _, s := range siteList {
			customDomain := "-"
			if s.CustomDomain != nil {
				customDomain = *s.CustomDomain
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				s.ID, s.Subdomain, customDomain, s.Owner.Email, s.CreatedAt.Format("2006-01-02"))
		}
		w.Flush()
	},
}

var siteDeleteCmd = &cobra.Command{
	Use:   "delete <subdomain>",
	Short: "Delete a site",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := initSystemDB(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		subdomain := args[0]
		site, err := sites.GetSiteBySubdomain(db.GetDB(), subdomain)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := sites.DeleteSite(db.GetDB(), site.ID); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting site: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Site deleted: %s\n", subdomain)
	},
}

var siteAddUserCmd = &cobra.Command{
	Use:   "add-user <subdomain> <email>",
	Short: "Add a user to a site",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := initSystemDB(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		subdomain := args[0]
		email := args[1]
		role, _ := cmd.Flags().GetString("role")

		if role == "" {
			role = "editor" // default role
		}

		site, err := sites.GetSiteBySubdomain(db.GetDB(), subdomain)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: site not found: %v\n", err)
			os.Exit(1)
		}

		user, err := users.GetUserByEmail(db.GetDB(), email)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: user not found: %v\n", err)
			os.Exit(1)
		}

		if err := sites.AddUserToSite(db.GetDB(), site.ID, user.ID, role); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding user to site: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Added %s to %s with role: %s\n", email, subdomain, role)
	},
}

var siteListUsersCmd = &cobra.Command{
	Use:   "list-users <subdomain>",
	Short: "List users with access to a site",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := initSystemDB(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		subdomain := args[0]
		site, err := sites.GetSiteBySubdomain(db.GetDB(), subdomain)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		siteUsers, err := sites.ListSiteUsers(db.GetDB(), site.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "EMAIL\tROLE")
		for _, su := range siteUsers {
			fmt.Fprintf(w, "%s\t%s\n", su.User.Email, su.Role)
		}
		w.Flush()
	},
}

var siteAddDomainCmd = &cobra.Command{
	Use:   "add-domain <subdomain> <domain>",
	Short: "Add a custom domain to a site",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := initSystemDB(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		subdomain := args[0]
		domain := args[1]

		site, err := sites.GetSiteBySubdomain(db.GetDB(), subdomain)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := sites.AddCustomDomain(db.GetDB(), site.ID, domain); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Added custom domain %s to site %s\n", domain, subdomain)
	},
}

var siteSettingsCmd = &cobra.Command{
	Use:   "settings <subdomain>",
	Short: "Show or change a site's customizer settings",
	Long: `Show a site's customizer settings. Any flag given changes that setting
and keeps the rest, e.g.

  lupus site settings pack --palette moonlight --dark-mode=true`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := initSystemDB(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		site, err := sites.GetSiteBySubdomain(db.GetDB(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		settings := sites.Settings(site)
		flags := cmd.Flags()
		changed := false
		for flag, target := range map[string]*string{
			"palette":                &settings.Palette,
			"accent-color":           &settings.AccentColor,
			"alternative-color":      &settings.AlternativeColor,
			"alternative-text-color": &settings.AlternativeTextColor,
			"logo-url":               &settings.LogoURL,
			"message-font":           &settings.MessageFont,
		} {
			if flags.Changed(flag) {
				*target, _ = flags.GetString(flag)
				changed = true
			}
		}
		if flags.Changed("dark-mode") {
			settings.DarkMode, _ = flags.GetBool("dark-mode")
			changed = true
		}

		if changed {
			site, err = sites.UpdateSettings(db.GetDB(), site.ID, settings)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			settings = sites.Settings(site)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "palette\t%s\n", settings.Palette)
		fmt.Fprintf(w, "dark_mode\t%v\n", settings.DarkMode)
		fmt.Fprintf(w, "accent_color\t%s\n", orDash(settings.AccentColor))
		fmt.Fprintf(w, "alternative_color\t%s\n", orDash(settings.AlternativeColor))
		fmt.Fprintf(w, "alternative_text_color\t%s\n", orDash(settings.AlternativeTextColor))
		fmt.Fprintf(w, "logo_url\t%s\n", orDash(settings.LogoURL))
		fmt.Fprintf(w, "message_font\t%s\n", settings.MessageFont)
		w.Flush()
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	siteCreateCmd.Flags().String("owner", "", "Email of the site owner (required)")
	siteAddUserCmd.Flags().String("role", "editor", "User role (owner, admin, editor)")

	siteSettingsCmd.Flags().String("palette", "", "Color palette ("+strings.Join(paletteNames(), ", ")+")")
	siteSettingsCmd.Flags().Bool("dark-mode", false, "Use the dark variant of the palette")
	siteSettingsCmd.Flags().String("accent-color", "", "Hex color overriding the palette primary")
	siteSettingsCmd.Flags().String("alternative-color", "", "Hex background for alternative-colors sections")
	siteSettingsCmd.Flags().String("alternative-text-color", "", "Hex text color for alternative-colors sections")
	siteSettingsCmd.Flags().String("logo-url", "", "Logo shown by background-logo sections")
	siteSettingsCmd.Flags().String("message-font", "", "Background message font ("+strings.Join(themes.ListMessageFonts(), ", ")+")")

	siteCmd.AddCommand(siteCreateCmd)
	siteCmd.AddCommand(siteListCmd)
	siteCmd.AddCommand(siteDeleteCmd)
	siteCmd.AddCommand(siteAddUserCmd)
	siteCmd.AddCommand(siteListUsersCmd)
	siteCmd.AddCommand(siteAddDomainCmd)
	siteCmd.AddCommand(siteSettingsCmd)
	rootCmd.AddCommand(siteCmd)
}

func paletteNames() []string {
	var names []string
	for _, p := range themes.ListPalettes() {
		names = append(names, p.Name)
	}
	return names
}
