//go:build linux

package notify

import "github.com/godbus/dbus/v5"

func send(summary, body, icon, category string, timeoutMs int) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return
	}

	hints := map[string]dbus.Variant{}
	if category != "" {
		hints["category"] = dbus.MakeVariant(category)
	}

	// Notify(app_name, replaces_id, app_icon, summary, body, actions,
	// hints, expire_timeout)
	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	obj.Call("org.freedesktop.Notifications.Notify", 0,
		appName, uint32(0), icon, summary, body,
		[]string{}, hints, int32(timeoutMs))
}
