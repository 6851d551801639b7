// Package validation applies the client-side format, size and duration
// policy to candidate video and thumbnail files. All outcomes are returned
// as structured results: a rejected file is a decision, not an error.
package validation

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mghilardi/vidlib/internal/client/models"
	"github.com/mghilardi/vidlib/internal/probe"
)

// MBToBytes converts the megabyte-based policy limits to bytes.
const MBToBytes = 1024 * 1024

// Policy is the validation configuration, supplied externally.
type Policy struct {
	MaxVideoSizeBytes     int64
	MaxVideoDuration      float64 // seconds
	MaxThumbnailSizeBytes int64

	VideoFormats    []string // accepted video MIME types
	VideoExtensions []string // matching extensions, for rejection messages
	ImageFormats    []string // accepted image MIME types
	ImageExtensions []string
}

// FileInfo describes a candidate file. MIME is the declared content type;
// Path is used only when the video duration has to be probed.
type FileInfo struct {
	Name string
	Path string
	Size int64
	MIME string
}

// Validator holds the policy and the duration prober.
type Validator struct {
	prober probe.Prober
	policy Policy
}

func NewValidator(prober probe.Prober, policy Policy) *Validator {
	return &Validator{prober: prober, policy: policy}
}

// ValidateVideo checks a candidate video file. The first failing check wins
// and short-circuits the rest: MIME supertype, MIME allow-list, duration
// probe, size limit, duration limit. Probing failures and non-finite or zero
// durations are reported as an unsupported-codec rejection.
func (v *Validator) ValidateVideo(ctx context.Context, file FileInfo) models.ValidationResult {
	mimeType := normalizeMIME(file.MIME)

	if !strings.HasPrefix(mimeType, "video/") {
		return rejected(fmt.Sprintf("The file %q is not a supported video.", file.Name))
	}

	if !containsFold(v.policy.VideoFormats, mimeType) {
		return rejected(fmt.Sprintf("Unsupported video format. Accepted formats: %s",
			upperJoin(v.policy.VideoExtensions)))
	}

	duration, err := v.prober.ProbeDuration(ctx, file.Path)
	if err != nil {
		return rejected(fmt.Sprintf("The video %q cannot be read - it may use an unsupported codec or format.", file.Name))
	}

	if math.IsInf(duration, 0) || math.IsNaN(duration) || duration == 0 {
		return rejected(fmt.Sprintf("The video %q has an invalid duration (likely unsupported codec).", file.Name))
	}

	if file.Size > v.policy.MaxVideoSizeBytes {
		return rejected(sizeReason(file.Name, v.policy.MaxVideoSizeBytes, file.Size))
	}

	if duration > v.policy.MaxVideoDuration {
		return rejected(fmt.Sprintf("The video %q exceeds the maximum allowed duration of %s (duration: %s).",
			file.Name,
			FormatDuration(int(v.policy.MaxVideoDuration)),
			FormatDuration(int(math.Floor(duration)))))
	}

	return models.ValidationResult{Valid: true, Duration: duration}
}

// ValidateThumbnail checks a candidate thumbnail image: MIME supertype,
// MIME allow-list, then the size limit. No duration is involved.
func (v *Validator) ValidateThumbnail(file FileInfo) models.ValidationResult {
	mimeType := normalizeMIME(file.MIME)

	if !strings.HasPrefix(mimeType, "image/") {
		return rejected(fmt.Sprintf("The file %q is not a valid image.", file.Name))
	}

	if !containsFold(v.policy.ImageFormats, mimeType) {
		return rejected(fmt.Sprintf("Unsupported image format. Accepted formats: %s",
			upperJoin(v.policy.ImageExtensions)))
	}

	if file.Size > v.policy.MaxThumbnailSizeBytes {
		return rejected(sizeReason(file.Name, v.policy.MaxThumbnailSizeBytes, file.Size))
	}

	return models.ValidationResult{Valid: true}
}

func rejected(reason string) models.ValidationResult {
	return models.ValidationResult{Valid: false, Reason: reason}
}

// sizeReason renders both the configured limit and the actual size in MB,
// the actual size with two decimal places.
func sizeReason(name string, maxBytes, size int64) string {
	maxMB := strconv.FormatFloat(float64(maxBytes)/MBToBytes, 'f', -1, 64)
	return fmt.Sprintf("The file %q exceeds the size limit of %sMB (size: %.2fMB).",
		name, maxMB, float64(size)/MBToBytes)
}

// normalizeMIME lowercases the type and strips any parameters, e.g.
// "video/mp4; codecs=avc1" becomes "video/mp4".
func normalizeMIME(mimeType string) string {
	if i := strings.Index(mimeType, ";"); i != -1 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

func upperJoin(items []string) string {
	upper := make([]string, len(items))
	for i, item := range items {
		upper[i] = strings.ToUpper(item)
	}
	return strings.Join(upper, ", ")
}
