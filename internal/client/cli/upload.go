package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/mghilardi/vidlib/internal/client/models"
	"github.com/mghilardi/vidlib/internal/client/validation"
)

// mimeByExtension covers the formats the policy knows about, so the lookup
// does not depend on the host's mime tables.
var mimeByExtension = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// fileInfoFor stats the file and guesses its MIME type from the extension.
func fileInfoFor(path string) (validation.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return validation.FileInfo{}, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	mimeType, ok := mimeByExtension[ext]
	if !ok {
		mimeType = mime.TypeByExtension(ext)
	}

	return validation.FileInfo{
		Name: filepath.Base(path),
		Path: path,
		Size: info.Size(),
		MIME: mimeType,
	}, nil
}

// Upload validates a video (and optional thumbnail) and, when both pass the
// gate, starts the transfer in the background. The REPL stays responsive;
// completion and failure are reported asynchronously.
func (a *App) Upload(ctx context.Context) error {
	videoPath, err := GetSimpleText(a.reader, "Path of the video file", os.Stdout)
	if err != nil {
		return err
	}

	videoInfo, err := fileInfoFor(videoPath)
	if err != nil {
		printlnFn("Cannot read file:", err.Error())
		return err
	}

	result := a.validator.ValidateVideo(ctx, videoInfo)
	if !result.Valid {
		printlnFn(result.Reason)
		return nil
	}

	thumbnailPath, err := GetSimpleText(a.reader, "Path of the thumbnail (empty for none)", os.Stdout)
	if err != nil {
		return err
	}
	if thumbnailPath != "" {
		thumbInfo, err := fileInfoFor(thumbnailPath)
		if err != nil {
			printlnFn("Cannot read file:", err.Error())
			return err
		}
		if thumbResult := a.validator.ValidateThumbnail(thumbInfo); !thumbResult.Valid {
			printlnFn(thumbResult.Reason)
			return nil
		}
	}

	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	if title == "" {
		title = videoInfo.Name
	}
	description, err := GetMultiline(a.reader, "Description", os.Stdout)
	if err != nil {
		return err
	}
	category, err := GetSimpleText(a.reader,
		fmt.Sprintf("Category (%s)", strings.Join(a.config.Categories, ", ")), os.Stdout)
	if err != nil {
		return err
	}
	tags, err := GetTags(a.reader, os.Stdout)
	if err != nil {
		return err
	}

	metadata := models.VideoMetadata{
		Title:       title,
		Description: description,
		Category:    category,
		Tags:        tags,
	}

	task := a.orchestrator.StartUpload(ctx, videoPath, thumbnailPath, metadata)
	printlnFn(fmt.Sprintf("Upload started (%s, %s)", task.TempID,
		validation.FormatDuration(int(result.Duration))))

	go func() {
		if v, err := task.Wait(ctx); err == nil {
			printlnFn(fmt.Sprintf("Upload complete: %s (%s)", v.Title, v.ID))
		}
	}()

	return nil
}

// Uploads prints the progress of every tracked upload.
func (a *App) Uploads(ctx context.Context) error {
	records := a.registry.Snapshot()
	if len(records) == 0 {
		printlnFn("No uploads in progress.")
		return nil
	}

	for _, rec := range records {
		switch rec.Status {
		case models.UploadStatusUploading:
			printlnFn(fmt.Sprintf("  %-30s %3d%%  uploading", truncate(rec.FileName, 30), rec.Progress))
		case models.UploadStatusUploaded:
			printlnFn(fmt.Sprintf("  %-30s 100%%  uploaded (%s)", truncate(rec.FileName, 30), rec.ServerID))
		case models.UploadStatusError:
			printlnFn(fmt.Sprintf("  %-30s %3d%%  error: %s", truncate(rec.FileName, 30), rec.Progress, rec.ErrorMessage))
		}
	}
	return nil
}

// Dismiss drops finished (uploaded or errored) entries from the registry.
func (a *App) Dismiss(ctx context.Context) error {
	a.registry.ClearFinished()
	printlnFn("Finished uploads dismissed.")
	return nil
}
