package amendo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"amendo/internal/logging"
	"amendo/internal/services"
)

// DownloadFileToPath fetches url and writes the body to targetPath. A partial
// file is removed when the transfer fails.
func (c *Client) DownloadFileToPath(ctx context.Context, url, targetPath string) (int64, error) {
	operation := fmt.Sprintf("download %s", url)

	resp, err := c.Request(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return 0, services.Wrap(services.ErrTransport, component, operation, "", err)
	}
	defer resp.Body.Close()

	file, err := os.OpenFile(targetPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("%s: open %s for writing: %w", operation, targetPath, err)
	}

	written, copyErr := io.Copy(file, resp.Body)
	closeErr := file.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(targetPath)
		if copyErr != nil {
			return written, services.Wrap(services.ErrTransport, component, operation, "write "+targetPath, copyErr)
		}
		return written, fmt.Errorf("%s: close %s: %w", operation, targetPath, closeErr)
	}

	logging.WithContext(ctx, c.logger).Info("downloaded result file", logging.Args(
		logging.String("url", url),
		logging.String("path", targetPath),
		logging.Int64("bytes", written),
	)...)
	return written, nil
}
