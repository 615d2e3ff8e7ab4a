package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Lari-oliv/olive-beauty/logger"
	"github.com/Lari-oliv/olive-beauty/models"
	"github.com/Lari-oliv/olive-beauty/repository"
	"github.com/Lari-oliv/olive-beauty/services"
)

var (
	statsDays  int
	statsLimit int
	statsBy    string
)

// statsCmd prints the dashboard overview
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the dashboard overview",
	Long: `Print the same aggregates the admin dashboard shows.

Examples:
  olive-beauty stats --days 30
  olive-beauty stats --days 7 --limit 5 --by revenue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStats(cmd.Context(), os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().IntVar(&statsDays, "days", services.DefaultDashboardDays, "Window size in days")
	statsCmd.Flags().IntVar(&statsLimit, "limit", 5, "Number of top products")
	statsCmd.Flags().StringVar(&statsBy, "by", string(models.RankByQuantity), "Rank top products by quantity or revenue")
}

func runStats(ctx context.Context, out io.Writer) error {
	by, serr := services.ParseTopProductMetric(statsBy)
	if serr != nil {
		return errors.New(serr.Message)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, db, err := loadEnvironment(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	dashboard := services.NewDashboardService(repository.NewGormDashboardRepository(db.DB), nil, cfg.DashboardLocation, logger.Log)
	overview, serr := dashboard.Overview(ctx, statsDays, statsLimit, by)
	if serr != nil {
		return errors.New(serr.Message)
	}
	_, err = fmt.Fprintln(out, renderOverview(overview))
	return err
}

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#10B981")
	colorMuted   = lipgloss.Color("#6B7280")
	colorBorder  = lipgloss.Color("#4B5563")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	labelStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	valueStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)

func success(format string, args ...interface{}) {
	fmt.Print(successStyle.Render("✓ "))
	fmt.Printf(format+"\n", args...)
}

func renderOverview(o *models.DashboardOverview) string {
	s := o.Stats
	headline := boxStyle.Render(strings.Join([]string{
		row("Orders", fmt.Sprint(s.TotalOrders)),
		row("Revenue", s.TotalRevenue.StringFixed(2)),
		row("Avg order", s.AverageOrderValue.StringFixed(2)),
		row("Pending", fmt.Sprint(s.PendingOrders)),
		row("Products", fmt.Sprint(s.TotalProducts)),
		row("Customers", fmt.Sprint(s.TotalCustomers)),
		row("Categories", fmt.Sprint(s.TotalCategories)),
	}, "\n"))

	daily := make([]string, 0, len(o.OrdersOverTime))
	for i, d := range o.OrdersOverTime {
		revenue := "0.00"
		if i < len(o.RevenueOverTime) {
			revenue = o.RevenueOverTime[i].Revenue.StringFixed(2)
		}
		daily = append(daily, row(d.Date, fmt.Sprintf("%d orders  %s", d.Count, revenue)))
	}

	statuses := make([]string, 0, len(o.OrdersByStatus))
	for _, sc := range o.OrdersByStatus {
		statuses = append(statuses, row(string(sc.Status), fmt.Sprint(sc.Count)))
	}

	top := make([]string, 0, len(o.TopProducts))
	for i, p := range o.TopProducts {
		top = append(top, row(fmt.Sprintf("%d. %s", i+1, p.Product.Name), fmt.Sprintf("%d sold  %s", p.Quantity, p.Revenue.StringFixed(2))))
	}
	if len(top) == 0 {
		top = append(top, labelStyle.Render("no sales yet"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("Olive Beauty, last %d days", o.Days)),
		headline,
		titleStyle.Render("Daily"),
		boxStyle.Render(strings.Join(daily, "\n")),
		lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("By status"), boxStyle.Render(strings.Join(statuses, "\n"))),
			"  ",
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Top products"), boxStyle.Render(strings.Join(top, "\n"))),
		),
		labelStyle.Render("generated "+o.GeneratedAt.Format("2006-01-02 15:04:05 MST")),
	)
}

func row(label, value string) string {
	return labelStyle.Width(14).Render(label) + valueStyle.Render(value)
}
