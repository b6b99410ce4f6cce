package functions

import (
	"context"
	"strings"

	"github.com/koopa0/storevoice/internal/locale"
	"github.com/koopa0/storevoice/internal/registry"
)

// getStoreInfo answers static store questions: hours, location, contact,
// services, or a general summary when no topic is given. The answers are
// static text, so this operation touches no tier at all.
func getStoreInfo(deps Deps) registry.Executor {
	return func(ctx context.Context, params map[string]any, call registry.Call) (registry.Result, error) {
		topic := strings.ToLower(registry.StringParam(params, "info_type"))
		lang := registry.StringParam(params, "language")
		if lang == "" {
			lang = call.Language()
		}
		l := locale.Resolve(lang, topic)

		key := "store.general"
		switch topic {
		case "hours", "opening_hours", "ωράριο":
			key = "store.hours"
		case "location", "address", "τοποθεσία", "διεύθυνση":
			key = "store.location"
		case "contact", "phone", "επικοινωνία", "τηλέφωνο":
			key = "store.contact"
		case "services", "υπηρεσίες":
			key = "store.services"
		}

		return registry.Result{
			Success: true,
			Message: locale.T(l, key),
			Data: map[string]any{
				"infoType": topic,
				"phone":    storePhone,
			},
		}, nil
	}
}
