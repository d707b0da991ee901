package main

import (
	"fmt"
	"net/url"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/appLSI/decentralized-rental-app-sub000/clients"
	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/repositories"
	"github.com/appLSI/decentralized-rental-app-sub000/search"
	"github.com/appLSI/decentralized-rental-app-sub000/services"
)

var (
	searchQuery  string
	searchCity   string
	searchGuests int
	searchType   string
	searchPrice  string
	searchSort   string
	searchPage   int
)

// searchCmd corre una búsqueda con los mismos parámetros que la URL del buscador
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search properties in the listing service",
	Long: `Search properties with the same filters as the web search page.

Either pass a shared query string:
  rental-web search --query 'city=Paris&price=%24100+-+%24200'
or the individual filters:
  rental-web search --city Paris --price '$100 - $200' --sort Oldest`,
	RunE: runSearch,
}

// transitionsCmd imprime el ciclo de vida de una propiedad
var transitionsCmd = &cobra.Command{
	Use:   "transitions",
	Short: "Print the property status lifecycle",
	RunE:  runTransitions,
}

func init() {
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "Shared search query string (overrides the other filters)")
	searchCmd.Flags().StringVar(&searchCity, "city", "", "City")
	searchCmd.Flags().IntVar(&searchGuests, "guests", 0, "Minimum number of guests")
	searchCmd.Flags().StringVar(&searchType, "type", "", "Property type (APARTMENT, HOUSE, ...)")
	searchCmd.Flags().StringVar(&searchPrice, "price", "", "Price band label, e.g. '$100 - $200'")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "Newest or Oldest")
	searchCmd.Flags().IntVar(&searchPage, "page", 0, "Zero-based page")
}

// filterFromFlags arma el filtro pasando por el mismo decoder que la URL
func filterFromFlags() (search.Filter, error) {
	if searchQuery != "" {
		return search.DecodeString(searchQuery)
	}

	v := url.Values{}
	if searchCity != "" {
		v.Set(search.ParamCity, searchCity)
	}
	if searchGuests > 0 {
		v.Set(search.ParamGuests, strconv.Itoa(searchGuests))
	}
	if searchType != "" {
		v.Set(search.ParamType, searchType)
	}
	if searchPrice != "" {
		v.Set(search.ParamPrice, searchPrice)
	}
	if searchSort != "" {
		v.Set(search.ParamSort, searchSort)
	}
	if searchPage > 0 {
		v.Set(search.ParamPage, strconv.Itoa(searchPage))
	}
	return search.Decode(v)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	filter, err := filterFromFlags()
	if err != nil {
		return err
	}

	listings := clients.NewListingsClient(cfg.ListingsAPIURL, cfg.HTTPTimeout)
	props := services.NewPropertyService(listings, repositories.NewCacheRepository(""))

	page, err := props.Search(cmd.Context(), filter, nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "query: %s\n", search.EncodeString(filter))
	fmt.Fprintf(out, "page %d of %d (%d properties)\n\n", filter.Page+1, page.TotalPages, page.TotalElements)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTYPE\tCITY\tGUESTS\tPRICE\tSTATUS")
	for _, p := range page.Content {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%.2f\t%s\n",
			p.PropertyID, p.Title, p.Type, p.City, p.NbOfGuests, p.PricePerNight, p.Status.Display().Label)
	}
	return tw.Flush()
}

func runTransitions(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FROM\tTO\tACTION\tWHO")
	for _, t := range domain.Transitions() {
		who := "host"
		if !t.HostAllowed {
			who = "admin"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.From, t.To, t.Label, who)
	}
	return tw.Flush()
}
