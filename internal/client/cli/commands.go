package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/obelousov/pixelboard/internal/client/models"
	"github.com/obelousov/pixelboard/internal/common"
	"github.com/obelousov/pixelboard/internal/filex"
)

const eventsPageSize = 10

// parseRange reads an optional look-back window in days. Empty input means
// no restriction.
func (a *App) parseRange() (time.Time, error) {
	text, err := getSimpleText(a.reader, "Days to look back (empty for all)", os.Stdout)
	if err != nil {
		return time.Time{}, err
	}
	if text == "" {
		return time.Time{}, nil
	}

	days, err := strconv.Atoi(text)
	if err != nil || days < 0 {
		fmt.Println("Expected a non-negative number of days.")
		return time.Time{}, nil
	}
	return time.Now().AddDate(0, 0, -days), nil
}

// Stats prints the overview counters for the selected date range.
func (a *App) Stats(ctx context.Context) error {
	from, err := a.parseRange()
	if err != nil {
		return err
	}

	stats, err := a.dashboard.Stats(ctx, from, time.Time{})
	if err != nil {
		log.Printf("Stats failed: %s", err.Error())
		return err
	}

	fmt.Printf("Leads:               %d\n", stats.Leads)
	fmt.Printf("Conversions:         %d\n", stats.Conversions)
	fmt.Printf("  failed:            %d\n", stats.FailedConversions)
	fmt.Printf("  pending:           %d\n", stats.PendingConversions)
	if stats.CredentialsComplete {
		fmt.Println("Pixel integration:   configured")
	} else {
		fmt.Println("Pixel integration:   NOT configured")
	}
	return nil
}

// Events prints one page of the activity feed, newest first. Leads and
// purchases are listed separately, matching how the pixel reports them.
func (a *App) Events(ctx context.Context) error {
	kind, err := getSimpleText(a.reader, "Event type (lead/purchase, empty for purchase)", os.Stdout)
	if err != nil {
		return err
	}

	if kind == "lead" {
		return a.leadEvents(ctx)
	}
	return a.purchaseEvents(ctx)
}

func (a *App) promptPage() (int, error) {
	pageText, err := getSimpleText(a.reader, "Page (empty for first)", os.Stdout)
	if err != nil {
		return 0, err
	}
	page := 1
	if pageText != "" {
		if n, err := strconv.Atoi(pageText); err == nil && n > 0 {
			page = n
		}
	}
	return page, nil
}

func printPageFooter(page int, total int64) {
	pages := (total + eventsPageSize - 1) / eventsPageSize
	fmt.Printf("Page %d of %d (%d events)\n", page, pages, total)
}

func (a *App) leadEvents(ctx context.Context) error {
	page, err := a.promptPage()
	if err != nil {
		return err
	}

	result, err := a.dashboard.ListLeads(ctx, &models.EventQuery{
		Limit:  eventsPageSize,
		Offset: (page - 1) * eventsPageSize,
	})
	if err != nil {
		log.Printf("Listing failed: %s", err.Error())
		return err
	}

	for _, event := range result.Events {
		fmt.Printf("%s  %-16s %-20s %s\n",
			event.CreatedAt.Format("2006-01-02 15:04"), event.PhoneNumber, event.ClickID, event.ID)
	}

	printPageFooter(page, result.Total)
	return nil
}

func (a *App) purchaseEvents(ctx context.Context) error {
	status, err := getSimpleText(a.reader, "Status filter (success/failed/pending, empty for all)", os.Stdout)
	if err != nil {
		return err
	}

	page, err := a.promptPage()
	if err != nil {
		return err
	}

	result, err := a.dashboard.ListPurchases(ctx, &models.EventQuery{
		Status: status,
		Limit:  eventsPageSize,
		Offset: (page - 1) * eventsPageSize,
	})
	if err != nil {
		log.Printf("Listing failed: %s", err.Error())
		return err
	}

	for _, event := range result.Events {
		fmt.Printf("%s  %-10s %-20s %s\n",
			event.CreatedAt.Format("2006-01-02 15:04"), event.Status, event.CustomerName, event.ID)
	}

	printPageFooter(page, result.Total)
	return nil
}

// Credentials prints the pixel credential row, if any.
func (a *App) Credentials(ctx context.Context) error {
	cred, err := a.dashboard.Credentials(ctx)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Println("No pixel credentials configured.")
			return nil
		}
		log.Printf("Credentials lookup failed: %s", err.Error())
		return err
	}

	fmt.Printf("Pixel ID:  %s\n", cred.PixelID)
	fmt.Printf("Page ID:   %s\n", cred.PageID)
	if cred.Configured() {
		fmt.Println("Status:    configured")
	} else {
		fmt.Println("Status:    incomplete")
	}
	return nil
}

// Webhooks lists the registered webhook endpoints.
func (a *App) Webhooks(ctx context.Context) error {
	hooks, err := a.dashboard.Webhooks(ctx)
	if err != nil {
		log.Printf("Webhook listing failed: %s", err.Error())
		return err
	}

	if len(hooks) == 0 {
		fmt.Println("No webhooks registered.")
		return nil
	}
	for _, hook := range hooks {
		fmt.Printf("%s  %s\n", hook.CreatedAt.Format("2006-01-02"), hook.URL)
	}
	return nil
}

// Export downloads a CSV of the matching purchase events.
func (a *App) Export(ctx context.Context) error {
	status, err := getSimpleText(a.reader, "Status filter (empty for all)", os.Stdout)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Output file (empty for a timestamped name)", os.Stdout)
	if err != nil {
		return err
	}
	if name == "" {
		name = fmt.Sprintf("events-%s.csv", time.Now().Format("20060102-150405"))
	}

	dir, err := filex.EnsureSubDir("download")
	if err != nil {
		log.Printf("Export failed: %s", err.Error())
		return err
	}
	path := filepath.Join(dir, name)

	if err := a.dashboard.Export(ctx, &models.EventQuery{Status: status}, path); err != nil {
		log.Printf("Export failed: %s", err.Error())
		return err
	}

	fmt.Println("Saved to", path)
	return nil
}
