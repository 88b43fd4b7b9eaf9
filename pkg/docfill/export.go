package docfill

import (
	"context"
	"fmt"
)

// FillAndExport duplicates the template into a disposable working copy,
// fills it from the profile, exports it in the configured binary format,
// and deletes the working copy. The template itself is never mutated.
//
// The delete runs in a cleanup step regardless of the fill or export
// outcome. A cleanup failure is logged informationally and never masks
// the primary result.
func (e *Engine) FillAndExport(ctx context.Context, templateID string, profile *Profile) ([]byte, error) {
	title := "docfill working copy"
	if profile != nil && profile.FullName() != "" {
		title = fmt.Sprintf("%s (working copy)", profile.FullName())
	}

	workID, err := e.client.Copy(ctx, templateID, title)
	if err != nil {
		return nil, NewRemoteError("copyDocument", templateID, err)
	}
	defer e.cleanup(ctx, workID)

	if err := e.Fill(ctx, workID, profile); err != nil {
		return nil, err
	}

	data, err := e.client.Export(ctx, workID, e.config.ExportFormat)
	if err != nil {
		return nil, NewRemoteError("export", workID, err)
	}

	e.logger.Infow("filled and exported template",
		"template", templateID, "format", e.config.ExportFormat, "bytes", len(data))
	return data, nil
}

// cleanup deletes a working copy, best effort.
func (e *Engine) cleanup(ctx context.Context, docID string) {
	if err := e.client.Delete(ctx, docID); err != nil {
		e.logger.Warnw("working copy cleanup failed",
			"error", NewCleanupError(docID, err).Error())
	}
}
