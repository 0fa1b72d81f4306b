package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/xyproto/env/v2"

	"github.com/seapack/seapack/internal/ctxlog"
	"github.com/seapack/seapack/internal/fsutil"
)

// IconRootEnv names the environment variable holding the directory searched
// for a default icon when none is given on an icon-capable target.
const IconRootEnv = "SEAPACK_ICON_ROOT"

// applyIcon brands the copied executable with an icon resource where the
// target format supports one. Branding is cosmetic: every failure in here is
// logged and swallowed, never fatal to the build.
func (p *Pipeline) applyIcon(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	if !p.opts.Platform.IconCapable() {
		if p.opts.Icon != "" {
			logger.Warn("Icon requested but the target executable format has no icon resources, skipping.",
				"platform", p.opts.Platform.String(), "icon", p.opts.Icon)
		} else {
			logger.Info("Icon branding not applicable for this target, skipping.", "platform", p.opts.Platform.String())
		}
		return nil
	}

	icon := p.opts.Icon
	if icon == "" {
		icon = defaultIcon(ctx)
		if icon == "" {
			logger.Info("No icon given and none found under the default root, executable keeps the stock icon.")
			return nil
		}
		logger.Debug("Using default icon.", "icon", icon)
	}

	if err := p.setIcon(ctx, icon); err != nil {
		logger.Warn("Icon could not be applied, continuing without branding.", "icon", icon, "error", err)
	}
	return nil
}

// setIcon hands the executable to the icon resource editor. Relative icon
// paths are rooted at the working directory, matching the entry file.
func (p *Pipeline) setIcon(ctx context.Context, icon string) error {
	path := icon
	if !filepath.IsAbs(path) {
		path = p.workPath(path)
	}
	if !fsutil.Exists(path) {
		return fmt.Errorf("icon %s does not exist", icon)
	}
	_, err := p.run.Run(ctx, p.tools.Rcedit, p.OutputPath(), "--set-icon", path)
	return err
}

// defaultIcon returns the first .ico file under IconRootEnv, or "" when the
// root is unset, unreadable or holds none.
func defaultIcon(ctx context.Context) string {
	root := env.Str(IconRootEnv)
	if root == "" {
		return ""
	}

	files, err := fsutil.FindFilesByExtension(root, ".ico")
	if err != nil {
		ctxlog.FromContext(ctx).Debug("Default icon root not searchable.", "root", root, "error", err)
		return ""
	}
	if len(files) == 0 {
		return ""
	}
	return files[0]
}
