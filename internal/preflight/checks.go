package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"amendo/internal/services/amendo"
)

const serverCheckTimeout = 5 * time.Second

// serverProbePath is requested to prove the REST interface answers. Any
// response other than an auth failure or a server error counts as reachable.
const serverProbePath = "/ws/rest/"

// Requester is the subset of the Amendo client used by CheckServer.
type Requester interface {
	BaseURL() string
	Request(ctx context.Context, method, url string, headers http.Header, body []byte) (*http.Response, error)
}

// CheckServer verifies that the workflow server is reachable and accepts the
// configured API key.
func CheckServer(ctx context.Context, client Requester) Result {
	const name = "Amendo server"

	base := strings.TrimSpace(client.BaseURL())
	if base == "" {
		return Result{Name: name, Detail: "missing url"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, serverCheckTimeout)
	defer cancel()

	resp, err := client.Request(checkCtx, http.MethodGet, base+serverProbePath, nil, nil)
	if err == nil {
		resp.Body.Close()
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (reachable)", base)}
	}

	var statusErr *amendo.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden:
			return Result{Name: name, Detail: fmt.Sprintf("%s (auth failed: http %d)", base, statusErr.StatusCode)}
		case statusErr.StatusCode >= http.StatusInternalServerError:
			return Result{Name: name, Detail: fmt.Sprintf("%s (server error: http %d)", base, statusErr.StatusCode)}
		default:
			return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (reachable, http %d)", base, statusErr.StatusCode)}
		}
	}
	return Result{Name: name, Detail: fmt.Sprintf("%s (%s)", base, summarizeError(err))}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func summarizeError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timed out"
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Sprintf("unreachable: %v", opErr.Err)
	}
	return err.Error()
}
