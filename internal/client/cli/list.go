package cli

import (
	"context"
	"fmt"

	"github.com/mghilardi/vidlib/internal/client/validation"
)

// List prints the current library snapshot.
func (a *App) List(ctx context.Context) error {
	videos := a.catalog.Videos()
	if len(videos) == 0 {
		printlnFn("The library is empty.")
		return nil
	}

	printlnFn(fmt.Sprintf("%d video(s):", len(videos)))
	for _, v := range videos {
		printlnFn(fmt.Sprintf("  %s  %-30s  %-12s  %s",
			v.ID, truncate(v.Title, 30), v.Category,
			validation.FormatDuration(int(v.Duration))))
	}
	return nil
}

// Refresh reloads the library from the server, falling back to the local
// cache when it is unreachable.
func (a *App) Refresh(ctx context.Context) error {
	fromCache, err := a.videoService.Load(ctx)
	if err != nil {
		printlnFn("Unable to connect to the local server.")
		return err
	}
	if fromCache {
		printlnFn("Server unreachable, showing cached library.")
		return nil
	}
	printlnFn("Videos loaded from local server")
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
