package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"estate-crm/config"
	"estate-crm/models"
	"estate-crm/normalize"
	"estate-crm/services"
	"estate-crm/storage"
	"estate-crm/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	repo := storage.NewRepository(storage.NewConnector(cfg, logger), logger)
	defer repo.Close()

	root := &cobra.Command{
		Use:   "estate-crm",
		Short: "Record management for a real-estate agent: listings, clients, agenda",
		// Failures degrade to a message, never a crash; the store may simply
		// be unavailable.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		initCmd(cfg, logger),
		listCmd(repo),
		addListingCmd(repo, logger),
		addClientCmd(repo, logger),
		addTaskCmd(repo, logger),
		deleteCmd(repo, logger),
		matchCmd(repo, logger),
		dashboardCmd(cfg, repo, logger),
		searchCmd(repo),
		mapCmd(repo),
		exportCmd(cfg, repo, logger),
	)

	if err := root.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func loadListings(repo *storage.Repository) []*models.Listing {
	rows := repo.ReadAll(models.ListingsSheet)
	listings := make([]*models.Listing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, models.ListingFromRow(row))
	}
	return listings
}

func loadClients(repo *storage.Repository) []*models.Client {
	rows := repo.ReadAll(models.ClientsSheet)
	clients := make([]*models.Client, 0, len(rows))
	for _, row := range rows {
		clients = append(clients, models.ClientFromRow(row))
	}
	return clients
}

func loadTasks(repo *storage.Repository) []*models.Task {
	rows := repo.ReadAll(models.TasksSheet)
	tasks := make([]*models.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, models.TaskFromRow(row))
	}
	return tasks
}

func initCmd(cfg *config.Config, logger *utils.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Provision an empty workbook with the three entity worksheets",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := storage.ResolveCredentials(cfg.CredentialsFile, cfg.CredentialsEnv)
			if err != nil {
				return err
			}
			path := creds.WorkbookPath(cfg.Resource)
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("workbook %q already exists", path)
			}
			if err := storage.CreateWorkbook(path, map[string][]string{
				models.ListingsSheet: models.ListingColumns,
				models.ClientsSheet:  models.ClientColumns,
				models.TasksSheet:    models.TaskColumns,
			}); err != nil {
				return err
			}
			logger.Info("Workbook created at %s", path)
			return nil
		},
	}
}

func listCmd(repo *storage.Repository) *cobra.Command {
	return &cobra.Command{
		Use:       "list {listings|clients|tasks}",
		Short:     "Print every record of one entity type",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"listings", "clients", "tasks"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "listings":
				for _, l := range loadListings(repo) {
					fmt.Printf("%-10s  %-35s  %-10s  %12d  %-20s  %s\n",
						l.Date.Format(models.DateLayout), l.Title, l.Type, l.Price, l.Location, l.Status)
				}
			case "clients":
				for _, c := range loadClients(repo) {
					link := services.WhatsAppLink(c.Phone)
					fmt.Printf("%-10s  %-25s  %-15s  %-20s  %s\n",
						c.Date.Format(models.DateLayout), c.FullName, c.Phone, c.Intent, link)
				}
			case "tasks":
				for _, t := range loadTasks(repo) {
					fmt.Printf("%-10s  %-5s  %-40s  %-8s  %s\n",
						t.Date.Format(models.DateLayout), t.Time, t.Description, t.Status, t.Priority)
				}
			default:
				return fmt.Errorf("unknown entity %q", args[0])
			}
			return nil
		},
	}
}

func addListingCmd(repo *storage.Repository, logger *utils.Logger) *cobra.Command {
	l := &models.Listing{}
	var price, lat, lon string

	cmd := &cobra.Command{
		Use:   "add-listing",
		Short: "Append one property listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			l.Date = time.Now()
			l.Price = normalize.Currency(price)
			if v, ok := normalize.Coordinate(lat); ok {
				l.Latitude = &v
			}
			if v, ok := normalize.Coordinate(lon); ok {
				l.Longitude = &v
			}
			if err := repo.Append(models.ListingsSheet, l.ToRow()); err != nil {
				logger.Error("Listing not saved: %v", err)
				return nil
			}
			logger.Info("Listing %q saved", l.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&l.Title, "title", "", "listing title (lookup key, keep unique)")
	cmd.Flags().StringVar((*string)(&l.Type), "type", string(models.TypeApartment), "Apartment|Villa|Land|Commercial|Office|Store")
	cmd.Flags().StringVar(&price, "price", "", "price, any currency formatting")
	cmd.Flags().StringVar(&l.Location, "location", "", "district / neighborhood")
	cmd.Flags().Float64Var(&l.AreaSqm, "area", 0, "area in m²")
	cmd.Flags().StringVar(&l.RoomLayout, "rooms", "", "room layout, e.g. 3+1")
	cmd.Flags().StringVar((*string)(&l.Status), "status", string(models.StatusForSale), "ForSale|ForRent")
	cmd.Flags().StringVar(&l.ImageURL, "image", "", "image URL")
	cmd.Flags().StringVar(&lat, "lat", "", "latitude, decimal comma or point")
	cmd.Flags().StringVar(&lon, "lon", "", "longitude, decimal comma or point")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func addClientCmd(repo *storage.Repository, logger *utils.Logger) *cobra.Command {
	c := &models.Client{}

	cmd := &cobra.Command{
		Use:   "add-client",
		Short: "Append one client request",
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Date = time.Now()
			if err := repo.Append(models.ClientsSheet, c.ToRow()); err != nil {
				logger.Error("Client not saved: %v", err)
				return nil
			}
			logger.Info("Client %q saved", c.FullName)
			return nil
		},
	}

	cmd.Flags().StringVar(&c.FullName, "name", "", "full name")
	cmd.Flags().StringVar(&c.Phone, "phone", "", "phone, any formatting")
	cmd.Flags().StringVar(&c.Intent, "intent", "", "e.g. \"ForSale Apartment\", \"ForRent Apartment\", \"Investor\"")
	cmd.Flags().StringVar(&c.BudgetRange, "budget", "", "budget range, free text")
	cmd.Flags().StringVar(&c.Notes, "notes", "", "notes")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func addTaskCmd(repo *storage.Repository, logger *utils.Logger) *cobra.Command {
	t := &models.Task{Status: models.TaskPending}

	cmd := &cobra.Command{
		Use:   "add-task",
		Short: "Append one agenda item",
		RunE: func(cmd *cobra.Command, args []string) error {
			t.Date = time.Now()
			if err := repo.Append(models.TasksSheet, t.ToRow()); err != nil {
				logger.Error("Task not saved: %v", err)
				return nil
			}
			logger.Info("Task %q saved", t.Description)
			return nil
		},
	}

	cmd.Flags().StringVar(&t.Time, "time", "", "time of day, e.g. 14:30")
	cmd.Flags().StringVar(&t.Description, "description", "", "task description (lookup key)")
	cmd.Flags().StringVar((*string)(&t.Priority), "priority", string(models.PriorityNormal), "Low|Normal|High")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func deleteCmd(repo *storage.Repository, logger *utils.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete {listing|task} KEY",
		Short: "Delete the first row whose lookup key matches",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var table string
			var col int
			switch args[0] {
			case "listing":
				table, col = models.ListingsSheet, models.ListingTitleColumn
			case "task":
				table, col = models.TasksSheet, models.TaskDescriptionColumn
			default:
				return fmt.Errorf("unknown entity %q (clients have no delete path)", args[0])
			}

			if err := repo.DeleteByKey(table, col, args[1]); err != nil {
				logger.Error("Not deleted: %v", err)
				return nil
			}
			logger.Info("%s %q deleted", args[0], args[1])
			return nil
		},
	}
	return cmd
}

func matchCmd(repo *storage.Repository, logger *utils.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "match CLIENT_NAME",
		Short: "Show the listings matching a client's stated intent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clients := loadClients(repo)
			var client *models.Client
			want := normalize.Text(args[0])
			for _, c := range clients {
				if strings.EqualFold(normalize.Text(c.FullName), want) {
					client = c
					break
				}
			}
			if client == nil {
				logger.Warn("No client named %q", args[0])
				return nil
			}

			matched, err := services.NewMatcher(logger).Match(client, loadListings(repo))
			if err != nil {
				logger.Warn("No recommendation possible: %v", err)
				return nil
			}
			if len(matched) == 0 {
				fmt.Printf("No listings match %s's intent %q.\n", client.FullName, client.Intent)
				return nil
			}
			fmt.Printf("Recommendations for %s (%s):\n", client.FullName, client.Intent)
			for _, l := range matched {
				fmt.Printf("  %-35s  %-10s  %12d  %s\n", l.Title, l.Type, l.Price, l.Location)
			}
			return nil
		},
	}
}

func dashboardCmd(cfg *config.Config, repo *storage.Repository, logger *utils.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Portfolio totals, client count and sales-goal progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := services.NewDashboard(logger, cfg.SalesGoal)
			d.Print(d.Generate(loadListings(repo), loadClients(repo), loadTasks(repo)))
			return nil
		},
	}
}

func searchCmd(repo *storage.Repository) *cobra.Command {
	return &cobra.Command{
		Use:   "search TERM",
		Short: "Find clients by name or phone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found := services.SearchClients(loadClients(repo), args[0])
			if len(found) == 0 {
				fmt.Println("No clients found.")
				return nil
			}
			for _, c := range found {
				fmt.Printf("%-25s  %-15s  %-20s  %s\n", c.FullName, c.Phone, c.Intent, c.Notes)
			}
			return nil
		},
	}
}

func mapCmd(repo *storage.Repository) *cobra.Command {
	return &cobra.Command{
		Use:   "map",
		Short: "Print the plottable listing coordinates",
		RunE: func(cmd *cobra.Command, args []string) error {
			points := services.MapPoints(loadListings(repo))
			if len(points) == 0 {
				fmt.Println("No listings with coordinates.")
				return nil
			}
			for _, p := range points {
				fmt.Printf("%9.5f, %9.5f  %s\n", p.Latitude, p.Longitude, p.Title)
			}
			return nil
		},
	}
}

func exportCmd(cfg *config.Config, repo *storage.Repository, logger *utils.Logger) *cobra.Command {
	var toCSV bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Mirror the workbook into PostgreSQL, or CSV files with --csv",
		RunE: func(cmd *cobra.Command, args []string) error {
			if toCSV {
				e, err := storage.NewCSVExporter(cfg.CSVExportDir)
				if err != nil {
					return err
				}
				for table, columns := range map[string][]string{
					models.ListingsSheet: models.ListingColumns,
					models.ClientsSheet:  models.ClientColumns,
					models.TasksSheet:    models.TaskColumns,
				} {
					if err := e.Export(table, columns, repo.ReadAll(table)); err != nil {
						return err
					}
				}
				logger.Info("CSV snapshot written to %s", cfg.CSVExportDir)
				return nil
			}

			a, err := storage.NewPostgresArchiver(cfg.DSN())
			if err != nil {
				logger.Error("PostgreSQL unavailable: %v", err)
				return nil
			}
			defer a.Close()

			if err := a.Archive(loadListings(repo), loadClients(repo), loadTasks(repo)); err != nil {
				logger.Error("Archive failed: %v", err)
				return nil
			}
			logger.Info("Workbook mirrored to PostgreSQL")
			return nil
		},
	}

	cmd.Flags().BoolVar(&toCSV, "csv", false, "export CSV snapshots instead of PostgreSQL")
	return cmd
}
