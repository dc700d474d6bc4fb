package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
)

type exportCmd struct {
	filterFlags
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "download expenses as CSV" }
func (*exportCmd) Usage() string {
	return `ledger export [-o <file>|-o -] [-category <c>] [-search <text>] [-from <date>] [-to <date>]

  Writes the CSV to the file named by the server (expenses-YYYY-MM-DD.csv)
  unless -o is given. Use -o - for stdout.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.filterFlags.register(f)
	f.StringVar(&c.output, "o", "", "output file, - for stdout")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	e := envFrom(args)

	var buf bytes.Buffer
	name, err := e.client.ExportCSV(ctx, c.filter(), &buf)
	if err != nil {
		return e.fail(err)
	}

	switch c.output {
	case "-":
		_, err = buf.WriteTo(e.out)
	case "":
		err = os.WriteFile(name, buf.Bytes(), 0o644)
	default:
		name = c.output
		err = os.WriteFile(name, buf.Bytes(), 0o644)
	}
	if err != nil {
		return e.fail(err)
	}

	if c.output != "-" {
		fmt.Fprintf(e.out, "Wrote %s\n", name)
	}
	return subcommands.ExitSuccess
}

type summaryCmd struct {
	filterFlags
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "totals per category" }
func (*summaryCmd) Usage() string {
	return `ledger summary [-category <c>] [-search <text>] [-from <date>] [-to <date>]
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	c.filterFlags.register(f)
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	e := envFrom(args)

	sum, err := e.client.Summary(ctx, c.filter())
	if err != nil {
		return e.fail(err)
	}

	if sum.Count == 0 {
		fmt.Fprintln(e.out, "No expenses")
		return subcommands.ExitSuccess
	}

	cur := sum.Currency
	fmt.Fprintf(e.out, "Total    %s over %d expense(s)\n", sum.FormattedTotal, sum.Count)
	fmt.Fprintf(e.out, "Average  %s\n", display(cur, sum.Average))
	fmt.Fprintf(e.out, "Highest  %s\n", display(cur, sum.Highest))
	fmt.Fprintf(e.out, "Lowest   %s\n\n", display(cur, sum.Lowest))

	tw := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "CATEGORY\tCOUNT\tTOTAL\tSHARE\t")
	for _, cat := range sum.Categories {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%.1f%%\t\n", cat.Category, cat.Count, cat.Formatted, cat.Percentage)
	}
	_ = tw.Flush()
	return subcommands.ExitSuccess
}
