//go:build linux

package watch

import (
	"github.com/coreos/go-systemd/v22/daemon"

	logx "cronlint/pkg/logx"
)

// notifyReady tells systemd the watcher is up. Outside a systemd unit
// (no NOTIFY_SOCKET) this is a no-op.
func notifyReady(log logx.Logger) {
	sent, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		log.Debug("sd_notify failed", logx.Err(err))
		return
	}
	if sent {
		log.Debug("sd_notify ready sent")
	}
}
