package api

import (
	"net/http"

	"github.com/openparl/tally/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		domain.Parliaments.Handler().Routes(),
		domain.Members.Handler().Routes(),
		domain.Bills.Handler().Routes(),
		domain.Votes.Handler().Routes(),
		domain.Committees.Handler().Routes(),
		domain.Topics.Handler().Routes(),
		domain.Stances.Handler().Routes(),
		newSnapshotHandler(runtime.Storage, runtime.Logger).routes(),
	)
}
