package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mghilardi/vidlib/internal/client/models"
)

// Edit updates a video's metadata. Empty answers leave a field unchanged.
func (a *App) Edit(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Video id", os.Stdout)
	if err != nil {
		return err
	}

	var update models.VideoUpdate

	title, err := GetSimpleText(a.reader, "New title (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if title != "" {
		update.Title = &title
	}

	description, err := GetMultiline(a.reader, "New description (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if description != "" {
		update.Description = &description
	}

	category, err := GetSimpleText(a.reader, "New category (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if category != "" {
		update.Category = &category
	}

	updated, err := a.videoService.Update(ctx, id, update)
	if err != nil {
		printlnFn("Error updating video:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Video updated successfully: %s", updated.Title))
	return nil
}

// Delete removes a video from the catalog after confirmation.
func (a *App) Delete(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Video id", os.Stdout)
	if err != nil {
		return err
	}

	if !a.Confirm(fmt.Sprintf("Delete video %s?", id)) {
		return nil
	}

	if err := a.videoService.Delete(ctx, id); err != nil {
		printlnFn("Error deleting video:", err.Error())
		return err
	}

	printlnFn("Video deleted successfully!")
	return nil
}
