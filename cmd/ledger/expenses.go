package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"

	"github.com/aussiebroadwan/ledger/pkg/ledgersdk"
)

// filterFlags are shared by list, export and summary.
type filterFlags struct {
	category string
	search   string
	sort     string
	from     string
	to       string
}

func (ff *filterFlags) register(f *flag.FlagSet) {
	f.StringVar(&ff.category, "category", "", "only this category")
	f.StringVar(&ff.search, "search", "", "description contains (case-insensitive)")
	f.StringVar(&ff.sort, "sort", "", "newest (default) or oldest")
	f.StringVar(&ff.from, "from", "", "start date YYYY-MM-DD, inclusive")
	f.StringVar(&ff.to, "to", "", "end date YYYY-MM-DD, inclusive")
}

func (ff *filterFlags) filter() ledgersdk.ListFilter {
	return ledgersdk.ListFilter{
		Category:  ff.category,
		Search:    ff.search,
		Sort:      ff.sort,
		StartDate: ff.from,
		EndDate:   ff.to,
	}
}

type addCmd struct {
	amount      string
	category    string
	description string
	date        string
	key         string
	currency    string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record an expense" }
func (*addCmd) Usage() string {
	return `ledger add -amount <amount> -category <category> -desc <description> [-date YYYY-MM-DD] [-key <idempotency key>]

  Records an expense. Network failures are retried with the same key, so
  the expense is stored at most once. Pass -key to make a repeated
  invocation safe as well.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "amount, e.g. 12.50")
	f.StringVar(&c.category, "category", "", "category, e.g. Food")
	f.StringVar(&c.description, "desc", "", "description")
	f.StringVar(&c.date, "date", "", "date YYYY-MM-DD (default: today)")
	f.StringVar(&c.key, "key", "", "idempotency key (default: generated)")
	f.StringVar(&c.currency, "currency", "INR", "currency used to display amounts")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	e := envFrom(args)
	if c.amount == "" || c.category == "" || c.description == "" {
		fmt.Fprint(e.errOut, c.Usage())
		return subcommands.ExitUsageError
	}

	date := c.date
	if date == "" {
		date = time.Now().Format(time.DateOnly)
	}
	key := c.key
	if key == "" {
		key = ledgersdk.NewIdempotencyKey()
	}

	exp, created, err := e.client.CreateExpense(ctx, ledgersdk.CreateExpenseRequest{
		Amount:         json.Number(c.amount),
		Category:       c.category,
		Description:    c.description,
		Date:           date,
		IdempotencyKey: key,
	})
	if err != nil {
		return e.fail(err)
	}

	verb := "Added"
	if !created {
		verb = "Already recorded"
	}
	fmt.Fprintf(e.out, "%s %s %s on %s (%s)\n", verb, display(c.currency, exp.Amount), exp.Category, exp.Date, exp.ID)
	return subcommands.ExitSuccess
}

type listCmd struct {
	filterFlags
	currency string
	asJSON   bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list expenses" }
func (*listCmd) Usage() string {
	return `ledger list [-category <c>] [-search <text>] [-sort newest|oldest] [-from <date>] [-to <date>] [-json]
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	c.filterFlags.register(f)
	f.StringVar(&c.currency, "currency", "INR", "currency used to display amounts")
	f.BoolVar(&c.asJSON, "json", false, "print JSON instead of a table")
}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	e := envFrom(args)

	resp, err := e.client.ListExpenses(ctx, c.filter())
	if err != nil {
		return e.fail(err)
	}

	if c.asJSON {
		enc := json.NewEncoder(e.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp.Expenses); err != nil {
			return e.fail(err)
		}
		return subcommands.ExitSuccess
	}

	if resp.Count == 0 {
		fmt.Fprintln(e.out, "No expenses")
		return subcommands.ExitSuccess
	}

	tw := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tCATEGORY\tDESCRIPTION\tAMOUNT\tID")
	for _, x := range resp.Expenses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", x.Date, x.Category, x.Description, display(c.currency, x.Amount), x.ID)
	}
	_ = tw.Flush()

	fmt.Fprintf(e.out, "%d expense(s)\n", resp.Count)
	return subcommands.ExitSuccess
}

type editCmd struct {
	amount      string
	category    string
	description string
	date        string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change fields of an expense" }
func (*editCmd) Usage() string {
	return `ledger edit [-amount <a>] [-category <c>] [-desc <d>] [-date <date>] <id>

  Only the flags given are changed.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "new amount")
	f.StringVar(&c.category, "category", "", "new category")
	f.StringVar(&c.description, "desc", "", "new description")
	f.StringVar(&c.date, "date", "", "new date YYYY-MM-DD")
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	e := envFrom(args)
	if f.NArg() != 1 {
		fmt.Fprint(e.errOut, c.Usage())
		return subcommands.ExitUsageError
	}

	// only flags that were actually passed become fields
	var req ledgersdk.UpdateExpenseRequest
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "amount":
			n := json.Number(c.amount)
			req.Amount = &n
		case "category":
			req.Category = &c.category
		case "desc":
			req.Description = &c.description
		case "date":
			req.Date = &c.date
		}
	})

	exp, err := e.client.UpdateExpense(ctx, f.Arg(0), req)
	if err != nil {
		return e.fail(err)
	}

	fmt.Fprintf(e.out, "Updated %s: %s %s %s on %s\n", exp.ID, exp.Amount, exp.Category, exp.Description, exp.Date)
	return subcommands.ExitSuccess
}

type deleteCmd struct{}

func (*deleteCmd) Name() string           { return "delete" }
func (*deleteCmd) Synopsis() string       { return "delete an expense" }
func (*deleteCmd) Usage() string          { return "ledger delete <id>...\n" }
func (*deleteCmd) SetFlags(*flag.FlagSet) {}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	e := envFrom(args)
	if f.NArg() == 0 {
		fmt.Fprint(e.errOut, c.Usage())
		return subcommands.ExitUsageError
	}

	status := subcommands.ExitSuccess
	for _, id := range f.Args() {
		if err := e.client.DeleteExpense(ctx, id); err != nil {
			fmt.Fprintf(e.errOut, "%s: ", id)
			status = e.fail(err)
			continue
		}
		fmt.Fprintf(e.out, "Deleted %s\n", id)
	}
	return status
}
