package analyzer

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/mwittig/packsize/pkg/manifest"
)

// Auditor provides a free-text vulnerability signal for a package.
type Auditor interface {
	// Audit returns the audit output for the package, or an error when the
	// signal could not be obtained. Callers degrade errors to a sentinel.
	Audit(ctx context.Context, name string, eco manifest.Ecosystem) (string, error)
}

// ExecAuditor shells out to the ecosystem's audit tool: `safety` for python
// and `npm audit` for node. Ecosystems without a tool report NoAudit.
type ExecAuditor struct {
	// Timeout bounds a single command invocation. Zero means 30 seconds.
	Timeout time.Duration
}

func (a *ExecAuditor) Audit(ctx context.Context, name string, eco manifest.Ecosystem) (string, error) {
	timeout := a.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var cmd *exec.Cmd
	switch eco {
	case manifest.Python:
		cmd = exec.CommandContext(ctx, "safety", "check", "--bare", "--dependency", name)
	case manifest.Node:
		cmd = exec.CommandContext(ctx, "npm", "audit", "package", name)
	default:
		return NoAudit, nil
	}

	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// NullAuditor always reports that no audit is available.
// Useful for testing and for environments without the audit tools.
type NullAuditor struct{}

func (NullAuditor) Audit(ctx context.Context, name string, eco manifest.Ecosystem) (string, error) {
	return NoAudit, nil
}
