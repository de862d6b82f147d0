package employee

import "go-roster/internal/api"

func RegisterActions(d *api.Dispatcher, h *Handler) {
	d.Register("employees.list", h.List)
	d.Register("employees.replaceAll", h.ReplaceAll)
	d.Register("employees.create", h.Create)
	d.Register("employees.update", h.Update)
	d.Register("employees.delete", h.Delete)
}
