package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Abdurahmanit/GroupProject/homes-service/internal/client/api"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/home/domain"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/ui/imageupload"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/ui/listingform"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/ui/notify"
)

var red = color.New(color.FgRed).SprintFunc()

type options struct {
	server      string
	imagePath   string
	redirect    string
	buttonText  string
	title       string
	description string
	price       string
	guests      string
	beds        string
	baths       string
}

func newRootCommand(out io.Writer) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("LISTHOME")
	v.AutomaticEnv()
	v.SetDefault("server", "http://localhost:8080")

	opts := &options{}
	cmd := &cobra.Command{
		Use:           "listhome",
		Short:         "Create a rental listing on homes-service",
		Long:          "listhome fills in the listing form from flags, uploads an optional image through the upload relay and submits the listing.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("server") {
				opts.server = v.GetString("server")
			}
			return run(cmd.Context(), out, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.server, "server", "http://localhost:8080", "homes-service base URL (env LISTHOME_SERVER)")
	f.StringVar(&opts.imagePath, "image", "", "path of a .png, .jpg, .jpeg or .gif picture to upload")
	f.StringVar(&opts.redirect, "redirect", "/homes", "path to navigate to after a successful submit")
	f.StringVar(&opts.buttonText, "button-text", listingform.DefaultButtonText, "label of the submit action")
	f.StringVar(&opts.title, "title", "", "listing title")
	f.StringVar(&opts.description, "description", "", "listing description")
	f.StringVar(&opts.price, "price", "0", "price per night")
	f.StringVar(&opts.guests, "guests", "1", "number of guests")
	f.StringVar(&opts.beds, "beds", "1", "number of beds")
	f.StringVar(&opts.baths, "baths", "1", "number of baths")
	return cmd
}

func run(ctx context.Context, out io.Writer, opts *options) error {
	client := api.New(opts.server, nil)
	console := notify.NewConsole(out)

	form := listingform.New(listingform.Config{
		RedirectPath: opts.redirect,
		ButtonText:   opts.buttonText,
		Uploader:     client,
		Notifier:     console,
		Navigator:    notify.ConsoleNavigator{Out: out},
		OnSubmit: func(ctx context.Context, home domain.NewHome) error {
			created, err := client.CreateHome(ctx, home)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "created home %s\n", created.ID)
			return nil
		},
	})

	values := map[string]string{
		domain.FieldTitle:       opts.title,
		domain.FieldDescription: opts.description,
		domain.FieldPrice:       opts.price,
		domain.FieldGuests:      opts.guests,
		domain.FieldBeds:        opts.beds,
		domain.FieldBaths:       opts.baths,
	}
	for _, name := range domain.ListingFields {
		if err := form.SetField(name, values[name]); err != nil {
			return err
		}
	}

	if opts.imagePath != "" {
		file, err := imageupload.OSFile(opts.imagePath)
		if err != nil {
			return fmt.Errorf("image: %w", err)
		}
		widget := form.Widget()
		if err := widget.Select(ctx, file); err != nil {
			if msg := widget.Error(); msg != "" {
				return errors.New(msg)
			}
			return err
		}
	}

	if !form.Valid() {
		printFieldErrors(out, form.Errors())
		return listingform.ErrInvalid
	}
	return form.Submit(ctx)
}

func printFieldErrors(out io.Writer, errs map[string]string) {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %s\n", red(errs[name]))
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, red("error: "+err.Error()))
		stop()
		os.Exit(1)
	}
}
