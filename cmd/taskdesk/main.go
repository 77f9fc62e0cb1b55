package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/emilianohg/taskdesk/internal/auth"
	"github.com/emilianohg/taskdesk/internal/blob"
	"github.com/emilianohg/taskdesk/internal/config"
	"github.com/emilianohg/taskdesk/internal/db"
	"github.com/emilianohg/taskdesk/internal/models"
	"github.com/emilianohg/taskdesk/internal/records"
	"github.com/emilianohg/taskdesk/internal/repository"
	"github.com/emilianohg/taskdesk/internal/server"
	"github.com/emilianohg/taskdesk/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "taskdesk",
	Short: "Project and task tracker with role-based access",
	Long:  `Taskdesk tracks projects, tasks, comments, files and time-sheets, and serves them over a JSON API.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fatal("serve", "Error loading config", err)
		}

		database, err := db.OpenAndMigrate()
		if err != nil {
			fatal("serve", "Error opening database", err)
		}
		defer db.Close()

		ttl, err := cfg.TokenDuration()
		if err != nil {
			fatal("serve", "Error in config", err)
		}

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Addr
		}

		s := server.New(database, blob.NewStore(cfg.UploadDir), auth.NewIssuer(cfg.JWTSecret, ttl))
		r := s.Router(gin.Logger(), gin.Recovery())

		log.Printf("taskdesk listening on %s", addr)
		if err := r.Run(addr); err != nil {
			fatal("serve", "Error", err)
		}
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Write the default config and run pending database migrations",
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := config.Load(); err != nil {
			fatal("migrate", "Error loading config", err)
		}

		database, err := db.Open()
		if err != nil {
			fatal("migrate", "Error opening database", err)
		}
		defer db.Close()

		if err := db.RunMigrations(database); err != nil {
			fatal("migrate", "Error running migrations", err)
		}

		status, err := db.GetMigrationStatus(database)
		if err != nil {
			fatal("migrate", "Error", err)
		}
		fmt.Printf("Database at version %d\n", status.CurrentVersion)
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	Run: func(cmd *cobra.Command, args []string) {
		database, err := db.Open()
		if err != nil {
			fatal("migrate", "Error opening database", err)
		}
		defer db.Close()

		status, err := db.GetMigrationStatus(database)
		if err != nil {
			fatal("migrate", "Error", err)
		}

		fmt.Printf("Current version: %d\n", status.CurrentVersion)
		fmt.Printf("Latest version: %d\n", status.LatestVersion)
		if status.Dirty {
			fmt.Println(ui.ErrorStyle.Render("Database is dirty"))
		}
		if status.Pending {
			fmt.Println(ui.WarningStyle.Render("Migrations pending, run 'taskdesk migrate'"))
		} else {
			fmt.Println(ui.SuccessStyle.Render("Up to date"))
		}
	},
}

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage groups",
}

var groupAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a group",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		database := openDB("group")
		defer db.Close()

		g, err := repository.NewGroupRepo(database).GetOrCreate(args[0])
		if err != nil {
			fatal("group", "Error creating group", err)
		}
		fmt.Printf("Group %q (id %d)\n", g.Name, g.ID)
	},
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userAddCmd = &cobra.Command{
	Use:   "add USERNAME",
	Short: "Create a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		password, _ := cmd.Flags().GetString("password")
		superuser, _ := cmd.Flags().GetBool("superuser")
		groupNames, _ := cmd.Flags().GetStringSlice("group")

		database := openDB("user")
		defer db.Close()

		var hash string
		if password != "" {
			h, err := auth.HashPassword(password)
			if err != nil {
				fatal("user", "Error hashing password", err)
			}
			hash = h
		}

		u, err := repository.NewUserRepo(database).Create(args[0], hash, superuser)
		if err != nil {
			fatal("user", "Error creating user", err)
		}

		groups := repository.NewGroupRepo(database)
		for _, name := range groupNames {
			g, err := groups.GetOrCreate(name)
			if err != nil {
				fatal("user", "Error creating group", err)
			}
			if err := groups.AddMember(g.ID, u.ID); err != nil {
				fatal("user", "Error adding user to group", err)
			}
		}

		fmt.Printf("User %q (id %d)\n", u.Username, u.ID)
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Run: func(cmd *cobra.Command, args []string) {
		database := openDB("user")
		defer db.Close()

		users, err := repository.NewUserRepo(database).GetAll()
		if err != nil {
			fatal("user", "Error listing users", err)
		}
		fmt.Println(ui.UserTable(users))
	},
}

var userPasswdCmd = &cobra.Command{
	Use:   "passwd USERNAME",
	Short: "Set a user's login password",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			fatal("user", "Error", fmt.Errorf("--password is required"))
		}

		database := openDB("user")
		defer db.Close()

		users := repository.NewUserRepo(database)
		u, err := users.GetByUsername(args[0])
		if err != nil {
			fatal("user", "Error", err)
		}
		if u == nil {
			fatal("user", "Error", fmt.Errorf("no user %q", args[0]))
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			fatal("user", "Error hashing password", err)
		}
		if err := users.SetPassword(u.ID, hash); err != nil {
			fatal("user", "Error setting password", err)
		}
		fmt.Println(ui.SuccessStyle.Render(fmt.Sprintf("Password updated for %q", u.Username)))
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token USERNAME",
	Short: "Print an API token for a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fatal("token", "Error loading config", err)
		}
		ttl, err := cfg.TokenDuration()
		if err != nil {
			fatal("token", "Error in config", err)
		}

		database := openDB("token")
		defer db.Close()

		u, err := repository.NewUserRepo(database).GetByUsername(args[0])
		if err != nil {
			fatal("token", "Error", err)
		}
		if u == nil || !u.IsActive {
			fatal("token", "Error", fmt.Errorf("no active user %q", args[0]))
		}

		token, err := auth.NewIssuer(cfg.JWTSecret, ttl).Issue(u.ID)
		if err != nil {
			fatal("token", "Error issuing token", err)
		}
		fmt.Println(token)
	},
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List the tasks a user can see",
	Run: func(cmd *cobra.Command, args []string) {
		username, _ := cmd.Flags().GetString("user")
		projectFlag, _ := cmd.Flags().GetString("project")

		var projectID *int64
		if projectFlag != "" {
			id, err := strconv.ParseInt(projectFlag, 10, 64)
			if err != nil {
				fatal("tasks", "Invalid project", err)
			}
			projectID = &id
		}

		database := openDB("tasks")
		defer db.Close()

		v := viewerFor(database, "tasks", username)
		tasks, err := records.NewManager(database, nil).ListTasks(v, projectID)
		if err != nil {
			fatal("tasks", "Error", err)
		}

		fmt.Println(ui.TitleStyle.Render("Tasks visible to " + v.Username))
		fmt.Println(ui.TaskTable(tasks))
	},
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List the projects a user can see",
	Run: func(cmd *cobra.Command, args []string) {
		username, _ := cmd.Flags().GetString("user")

		database := openDB("projects")
		defer db.Close()

		v := viewerFor(database, "projects", username)
		projects, err := records.NewManager(database, nil).ListProjects(v)
		if err != nil {
			fatal("projects", "Error", err)
		}

		fmt.Println(ui.TitleStyle.Render("Projects visible to " + v.Username))
		fmt.Println(ui.ProjectTable(projects))
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config)")

	migrateCmd.AddCommand(migrateStatusCmd)
	groupCmd.AddCommand(groupAddCmd)

	userAddCmd.Flags().String("password", "", "Login password (no login when empty)")
	userAddCmd.Flags().Bool("superuser", false, "Grant unrestricted access")
	userAddCmd.Flags().StringSlice("group", nil, "Group to join (repeatable)")
	userCmd.AddCommand(userAddCmd)
	userPasswdCmd.Flags().String("password", "", "New login password")
	userCmd.AddCommand(userPasswdCmd)
	userCmd.AddCommand(userListCmd)

	tasksCmd.Flags().String("user", "", "Username to list tasks for")
	tasksCmd.Flags().String("project", "", "Only tasks of this project id")
	tasksCmd.MarkFlagRequired("user")

	projectsCmd.Flags().String("user", "", "Username to list projects for")
	projectsCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(projectsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openDB(command string) *sql.DB {
	database, err := db.OpenAndMigrate()
	if err != nil {
		fatal(command, "Error opening database", err)
	}
	return database
}

func viewerFor(database *sql.DB, command, username string) models.Viewer {
	users := repository.NewUserRepo(database)
	u, err := users.GetByUsername(username)
	if err != nil {
		fatal(command, "Error", err)
	}
	if u == nil {
		fatal(command, "Error", fmt.Errorf("no user %q", username))
	}
	v, err := users.Viewer(u.ID)
	if err != nil {
		fatal(command, "Error", err)
	}
	if v == nil {
		fatal(command, "Error", fmt.Errorf("user %q is inactive", username))
	}
	return *v
}

// fatal reports err, records it in the error log and exits.
func fatal(command, msg string, err error) {
	logError(command, err)
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	db.Close()
	os.Exit(1)
}

func logError(command string, err error) {
	logPath, pathErr := config.ErrorLogPath()
	if pathErr != nil {
		return
	}

	if err := config.EnsureDirectories(); err != nil {
		return
	}

	f, fileErr := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if fileErr != nil {
		return
	}
	defer f.Close()

	fmt.Fprintf(f, "[%s] %v\n", command, err)
}
