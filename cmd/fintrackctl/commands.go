package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// draftFlags registers the editable fields on fs.
func draftFlags(fs *flag.FlagSet) *core.Input {
	in := &core.Input{}
	fs.StringVar(&in.Description, "desc", "", "description")
	fs.StringVar(&in.Amount, "amount", "", "amount, e.g. 12.50 or $1,200")
	fs.StringVar(&in.Type, "type", "", "income or expense")
	fs.StringVar(&in.Category, "category", "", "one of "+categoryList())
	fs.StringVar(&in.Date, "date", "", "YYYY-MM-DD or RFC 3339")
	return in
}

func categoryList() string {
	names := make([]string, 0, len(core.Categories()))
	for _, c := range core.Categories() {
		names = append(names, c.String())
	}
	return strings.Join(names, ", ")
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
	}
	return nil
}

func (a *app) parse(args []string) error {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: parse needs some text", errUsage)
	}
	d := a.svc.Parse(text)
	fmt.Fprintf(a.out, "amount:      %s\n", core.FormatAmount(d.Amount))
	fmt.Fprintf(a.out, "type:        %s\n", d.Type)
	fmt.Fprintf(a.out, "category:    %s\n", d.Category)
	fmt.Fprintf(a.out, "description: %s\n", d.Description)
	return nil
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := newFlagSet("add")
	in := draftFlags(fs)
	text := fs.String("text", "", "free text to parse, e.g. \"Lunch at cafe 250\"")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *text == "" && in.Amount == "" {
		return fmt.Errorf("%w: add needs -text or -amount", errUsage)
	}

	var base core.Draft
	if *text != "" {
		base = a.svc.Parse(*text)
	}
	d, err := in.Apply(base)
	if err != nil {
		return err
	}
	tx, err := a.svc.Create(ctx, a.sessions.UserID(ctx), d)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "added %s\n", tx.ID)
	return nil
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := newFlagSet("list")
	q := fs.String("q", "", "description contains")
	category := fs.String("category", "", "exact category")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	f := ledger.Filter{Query: *q}
	if *category != "" && !strings.EqualFold(*category, "all") {
		c, err := core.ParseCategory(*category)
		if err != nil {
			return err
		}
		f.Category = c
	}

	list, err := a.svc.List(ctx, f)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tCATEGORY\tAMOUNT\tDESCRIPTION")
	for _, tx := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID, tx.Date.Format("2006-01-02"), tx.Type, tx.Category, core.FormatAmount(tx.Amount), tx.Description)
	}
	return tw.Flush()
}

func (a *app) edit(ctx context.Context, args []string) error {
	fs := newFlagSet("edit")
	in := draftFlags(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: edit needs exactly one id", errUsage)
	}
	id := fs.Arg(0)

	existing, err := a.svc.Get(ctx, id)
	if err != nil {
		return err
	}
	d, err := in.Apply(existing.Draft())
	if err != nil {
		return err
	}
	if _, err := a.svc.Update(ctx, id, d); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "updated %s\n", id)
	return nil
}

func (a *app) delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: delete needs exactly one id", errUsage)
	}
	deleted, err := a.svc.Delete(ctx, args[0])
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintf(a.out, "no transaction %s\n", args[0])
		return nil
	}
	fmt.Fprintf(a.out, "deleted %s\n", args[0])
	return nil
}

func (a *app) summary(ctx context.Context) error {
	d, err := a.svc.Dashboard(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "income:   %s\n", core.FormatAmount(d.Summary.Income))
	fmt.Fprintf(a.out, "expenses: %s\n", core.FormatAmount(d.Summary.Expenses))
	fmt.Fprintf(a.out, "savings:  %s\n", core.FormatAmount(d.Summary.Savings))

	if len(d.Categories) > 0 {
		fmt.Fprintln(a.out, "\nexpenses by category:")
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		for _, c := range d.Categories {
			fmt.Fprintf(tw, "  %s\t%s\n", c.Category, core.FormatAmount(c.Total))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	if len(d.Trend) > 0 {
		fmt.Fprintln(a.out, "\nmonthly trend:")
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  MONTH\tINCOME\tEXPENSE\tSAVINGS")
		for _, m := range d.Trend {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", m.Month,
				core.FormatAmount(m.Income), core.FormatAmount(m.Expense), core.FormatAmount(m.Savings))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) export(ctx context.Context, args []string) error {
	fs := newFlagSet("export")
	out := fs.String("o", "", "output file (default stdout)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if *out == "" {
		if err := a.svc.ExportCSV(ctx, a.out); err != nil {
			return err
		}
		fmt.Fprintln(a.out)
		return nil
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}
	if err := a.svc.ExportCSV(ctx, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", *out, err)
	}
	fmt.Fprintf(a.out, "exported to %s\n", *out)
	return nil
}

func (a *app) importCSV(ctx context.Context, args []string) error {
	fs := newFlagSet("import")
	in := fs.String("f", "-", `CSV file, "-" for stdin`)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	r := a.in
	if *in != "-" {
		f, err := os.Open(*in)
		if err != nil {
			return fmt.Errorf("open %s: %w", *in, err)
		}
		defer f.Close()
		r = f
	}
	imported, err := a.svc.ImportCSV(ctx, a.sessions.UserID(ctx), r)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "imported %d transactions\n", len(imported))
	return nil
}

func (a *app) login(ctx context.Context) error {
	u, err := a.sessions.SignIn(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "signed in as %s <%s>\n", u.Name, u.Email)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.sessions.SignOut(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "signed out")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	u, ok, err := a.sessions.Current(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "not signed in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> (%s)\n", u.Name, u.Email, u.ID)
	return nil
}

func (a *app) setTheme(ctx context.Context, args []string) error {
	var (
		dark bool
		err  error
	)
	switch {
	case len(args) == 0:
		dark, err = a.theme.Dark(ctx)
	case len(args) == 1 && args[0] == "dark":
		dark, err = true, a.theme.SetDark(ctx, true)
	case len(args) == 1 && args[0] == "light":
		dark, err = false, a.theme.SetDark(ctx, false)
	case len(args) == 1 && args[0] == "toggle":
		dark, err = a.theme.Toggle(ctx)
	default:
		return fmt.Errorf("%w: theme takes dark, light or toggle", errUsage)
	}
	if err != nil {
		return err
	}
	if dark {
		fmt.Fprintln(a.out, "dark")
	} else {
		fmt.Fprintln(a.out, "light")
	}
	return nil
}
