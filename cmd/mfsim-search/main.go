package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Bhuvanesh09/mfsim/internal/navdata"
)

func main() {
	schemeList := flag.String("scheme-list", "data/scheme_list.json", "path to the AMFI scheme catalog")
	top := flag.Int("top", 30, "max results to show")
	direct := flag.Bool("direct", false, "filter to Direct plans only")
	growth := flag.Bool("growth", false, "filter to Growth option only")
	code := flag.Bool("code", false, "show scheme codes alongside names")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: mfsim-search [flags] keyword [keyword ...]")
		flag.PrintDefaults()
		os.Exit(2)
	}
	query := strings.Join(flag.Args(), " ")

	funds, err := navdata.LoadSchemeList(*schemeList)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mfsim-search: %v\n", err)
		os.Exit(1)
	}

	results := navdata.SearchFunds(funds, query, navdata.SearchOptions{
		GrowthOnly: *growth,
		DirectOnly: *direct,
	})
	if len(results) == 0 {
		fmt.Printf("No funds found matching %q\n", query)
		os.Exit(1)
	}

	var filters []string
	if *direct {
		filters = append(filters, "direct")
	}
	if *growth {
		filters = append(filters, "growth")
	}
	filterStr := ""
	if len(filters) > 0 {
		filterStr = fmt.Sprintf(" [%s]", strings.Join(filters, ", "))
	}
	fmt.Printf("\nFound %d fund(s) matching %q%s:\n\n", len(results), query, filterStr)

	shown := results
	if len(shown) > *top {
		shown = shown[:*top]
	}
	if *code {
		fmt.Printf("%-10s %s\n", "Code", "Name")
		fmt.Println(strings.Repeat("-", 90))
		for _, fund := range shown {
			fmt.Printf("%-10d %s\n", fund.SchemeCode, fund.SchemeName)
		}
	} else {
		for _, fund := range shown {
			fmt.Printf("  %s\n", fund.SchemeName)
		}
	}
	if len(results) > *top {
		fmt.Printf("\n... and %d more. Use -top N to see more.\n", len(results)-*top)
	}
}
