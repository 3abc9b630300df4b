/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"profiletrail"
	"profiletrail/config"
	"profiletrail/storage"
	"profiletrail/types"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func cmdContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

func main() {
	_ = godotenv.Load()

	var (
		cfgPath = envOr("PROFILETRAIL_CONFIG", "")
		tracker profiletrail.Tracker
	)

	root := &cobra.Command{
		Use:           "trailctl",
		Short:         "Track, star, and query recently used launcher profiles",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			cfg.ConfigureLogging()
			if _, err := storage.Init(cfg.StoreConfig()); err != nil {
				return err
			}
			tracker = profiletrail.NewTracker()

			ctx, cancel := cmdContext()
			defer cancel()
			return tracker.Seed(ctx)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = storage.Close()
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", cfgPath, "Path to the YAML config file (env PROFILETRAIL_CONFIG)")

	recordCmd := &cobra.Command{
		Use:   "record <profile> <app>",
		Short: "Record that a profile was opened on an app",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			return tracker.RecordUsage(ctx, args[0], args[1])
		},
	}

	var recentApp string
	var recentLimit int
	recentCmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently used profiles, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			items, err := tracker.RecentForApp(ctx, recentApp, recentLimit)
			if err != nil {
				return err
			}
			for _, item := range items {
				fmt.Printf("%s\t%s\t%s\t%s\n",
					item.Timestamp.Time().Format(time.RFC3339), item.App, item.Profile, item.AppName)
			}
			return nil
		},
	}
	recentCmd.Flags().StringVar(&recentApp, "app", "", "Only show entries for this app")
	recentCmd.Flags().IntVar(&recentLimit, "limit", 10, "Maximum number of entries (0 = all)")

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Dump the full usage history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			items, err := tracker.History(ctx)
			if err != nil {
				return err
			}
			for _, item := range items {
				fmt.Printf("%s\t%s\t%s\t%s\n",
					item.Timestamp.Time().Format(time.RFC3339), item.App, item.Profile, item.AppName)
			}
			return nil
		},
	}

	profilesCmd := &cobra.Command{
		Use:   "profiles",
		Short: "List distinct profiles seen in history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			profiles, err := tracker.KnownProfiles(ctx)
			if err != nil {
				return err
			}
			for _, p := range profiles {
				fmt.Println(p)
			}
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear-history",
		Short: "Remove all usage history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			return tracker.ClearHistory(ctx)
		},
	}

	starCmd := &cobra.Command{
		Use:   "star <profile> <app>",
		Short: "Star a profile on an app",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			return tracker.Star(ctx, args[0], args[1])
		},
	}

	unstarCmd := &cobra.Command{
		Use:   "unstar <profile> <app>",
		Short: "Remove a starred profile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			return tracker.Unstar(ctx, args[0], args[1])
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle <profile> <app>",
		Short: "Toggle a star and print the new state",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			starred, err := tracker.ToggleStar(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			if starred {
				fmt.Println("starred")
			} else {
				fmt.Println("unstarred")
			}
			return nil
		},
	}

	var starredApp string
	starredCmd := &cobra.Command{
		Use:   "starred",
		Short: "List starred profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			if starredApp != "" {
				parsed, err := tracker.StarredForApp(ctx, starredApp)
				if err != nil {
					return err
				}
				for _, s := range parsed {
					fmt.Printf("%s\t%s\n", s.App, s.Profile)
				}
				return nil
			}
			parsed, err := tracker.Starred(ctx)
			if err != nil {
				return err
			}
			for _, s := range parsed {
				fmt.Printf("%s\t%s\n", s.App, s.Profile)
			}
			return nil
		},
	}
	starredCmd.Flags().StringVar(&starredApp, "app", "", "Only show stars for this app")

	var appsAll bool
	appsCmd := &cobra.Command{
		Use:   "apps",
		Short: "List apps (visible by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			var apps []types.App
			var err error
			if appsAll {
				apps, err = tracker.Apps(ctx)
			} else {
				apps, err = tracker.VisibleApps(ctx)
			}
			if err != nil {
				return err
			}
			for _, app := range apps {
				fmt.Printf("%s\t%s\t%s\n", app.Value, app.Name, app.URLTemplate)
			}
			return nil
		},
	}
	appsCmd.Flags().BoolVar(&appsAll, "all", false, "Include hidden apps")

	appShowCmd := &cobra.Command{
		Use:   "show <app>",
		Short: "Make an app visible",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			return tracker.SetAppVisible(ctx, args[0], true)
		},
	}

	appHideCmd := &cobra.Command{
		Use:   "hide <app>",
		Short: "Hide an app",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			return tracker.SetAppVisible(ctx, args[0], false)
		},
	}
	appsCmd.AddCommand(appShowCmd, appHideCmd)

	var registerName, registerURL string
	registerCmd := &cobra.Command{
		Use:   "register <value>",
		Short: "Register a custom app",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			return tracker.RegisterApp(ctx, types.App{
				Value:       args[0],
				Name:        registerName,
				URLTemplate: registerURL,
			})
		},
	}
	registerCmd.Flags().StringVar(&registerName, "name", "", "Display name")
	registerCmd.Flags().StringVar(&registerURL, "url-template", "", "URL template containing {profile}")
	appsCmd.AddCommand(registerCmd)

	defaultAppCmd := &cobra.Command{
		Use:   "default-app [app]",
		Short: "Show or set the default app",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			if len(args) == 1 {
				return tracker.SetDefaultApp(ctx, args[0])
			}
			app, err := tracker.DefaultApp(ctx)
			if err != nil {
				return err
			}
			fmt.Println(app.Value)
			return nil
		},
	}

	urlCmd := &cobra.Command{
		Use:   "url <app> <profile>",
		Short: "Print the launch URL for a profile on an app",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			url, err := tracker.ProfileURL(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Println(url)
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show store health and statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			health := storage.Health(ctx)
			stats, err := storage.GetStats(ctx)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(map[string]interface{}{
				"health": health,
				"stats":  stats,
			}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	root.AddCommand(
		recordCmd, recentCmd, historyCmd, profilesCmd, clearCmd,
		starCmd, unstarCmd, toggleCmd, starredCmd,
		appsCmd, defaultAppCmd, urlCmd, statusCmd,
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
