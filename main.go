package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/urfave/cli"

	"github.com/blackrosezy/go-athan-dubai/athan"
	"github.com/blackrosezy/go-athan-dubai/config"
	"github.com/blackrosezy/go-athan-dubai/solat"
	"github.com/blackrosezy/go-athan-dubai/ui"
)

var logger = zerolog.Nop()

var dateFlag = cli.StringFlag{
	Name:  "date, d",
	Usage: "day to show, as YYYY-MM-DD (default: today)",
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
	}

	if err := newApp().Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("athan failed")
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "athan"
	app.Usage = "daily prayer times for Dubai"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "config, c",
			Usage:  "path to a JSON or YAML config file",
			Value:  config.DefaultPath,
			EnvVar: "ATHAN_CONFIG",
		},
		cli.BoolFlag{
			Name:   "verbose, v",
			Usage:  "log debug output to stderr",
			EnvVar: "ATHAN_VERBOSE",
		},
	}
	app.Before = func(c *cli.Context) error {
		level := zerolog.WarnLevel
		if c.GlobalBool("verbose") {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(level).With().Timestamp().Logger()
		return nil
	}
	app.Action = func(c *cli.Context) error {
		return show(c, "", 0)
	}
	app.Commands = []cli.Command{
		{
			Name:    "show",
			Aliases: []string{"s"},
			Usage:   "print the prayer schedule",
			Flags: []cli.Flag{
				dateFlag,
				cli.IntFlag{Name: "city", Usage: "city id (default: from config)", EnvVar: "ATHAN_CITY_ID"},
			},
			Action: func(c *cli.Context) error {
				return show(c, c.String("date"), c.Int("city"))
			},
		},
		{
			Name:  "cities",
			Usage: "list the city ids known to the prayer-times site",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "url", Usage: "city directory page (default: from config)"},
			},
			Action: cities,
		},
		{
			Name:  "compare",
			Usage: "print the schedule of several cities side by side",
			Flags: []cli.Flag{
				dateFlag,
				cli.IntSliceFlag{Name: "city", Usage: "city id, repeatable"},
			},
			Action: compare,
		},
		{
			Name:  "url",
			Usage: "print the upstream request url",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "month", Value: int(time.Now().Month())},
				cli.IntFlag{Name: "year", Value: time.Now().Year()},
				cli.IntFlag{Name: "city"},
			},
			Action: requestURL,
		},
	}
	return app
}

func loadConfig(c *cli.Context) config.Config {
	loader := config.NewLoader(afero.NewOsFs(), logger.With().Str("component", "config").Logger())
	return loader.Load(c.GlobalString("config"))
}

func show(c *cli.Context, date string, city int) error {
	cfg := loadConfig(c)
	if city > 0 {
		cfg.Location.CityID = city
	}

	manager := athan.NewFromConfig(cfg, logger)
	day, err := parseDate(date, manager.Location())
	if err != nil {
		return err
	}

	ui.NewSettings(manager).LoadUserPreferences()

	dashboard := ui.NewDashboard(manager)
	dashboard.Day = day
	return dashboard.Render(context.Background(), os.Stdout)
}

func cities(c *cli.Context) error {
	cfg := loadConfig(c)
	url := c.String("url")
	if url == "" {
		url = cfg.API.CitiesURL
	}

	wp := &solat.WebParser{}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout())
	defer cancel()

	html, err := wp.GetRawData(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to fetch city directory: %w", err)
	}
	list, err := wp.Parse(html)
	if err != nil {
		return fmt.Errorf("failed to parse city directory: %w", err)
	}

	for _, city := range list {
		fmt.Printf("%4d  %s\n", city.ID, city.Name)
	}
	return nil
}

func compare(c *cli.Context) error {
	cfg := loadConfig(c)
	ids := c.IntSlice("city")
	if len(ids) == 0 {
		return errors.New("at least one --city is required")
	}

	manager := athan.NewFromConfig(cfg, logger)
	loc := manager.Location()
	day, err := parseDate(c.String("date"), loc)
	if err != nil {
		return err
	}
	if day.IsZero() {
		now := time.Now().In(loc)
		day = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	}

	mcfg := manager.Config()
	base := solat.NewClient(mcfg.API.BaseURL, mcfg.Location.CityID, mcfg.API.Timeout(),
		logger.With().Str("component", "solat").Logger())
	results := solat.FetchMany(context.Background(), *base, ids, day, mcfg.API.Workers)

	sorted := make([]int, 0, len(results))
	for id := range results {
		sorted = append(sorted, id)
	}
	sort.Ints(sorted)

	dashboard := ui.NewDashboard(manager)
	for i, id := range sorted {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("City %d\n", id)
		if err := dashboard.Print(os.Stdout, day, manager.GetTimezone(), results[id]); err != nil {
			return err
		}
	}
	return nil
}

func requestURL(c *cli.Context) error {
	cfg := loadConfig(c)
	city := c.Int("city")
	if city == 0 {
		city = cfg.Location.CityID
	}
	client := solat.NewClient(cfg.API.BaseURL, city, 0, logger)
	fmt.Println(client.BuildURL(c.Int("month"), c.Int("year"), city))
	return nil
}

func parseDate(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	day, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: %w", value, err)
	}
	return day, nil
}
