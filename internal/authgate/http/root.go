package http

import (
	"net/http"

	"github.com/aussiebroadwan/authgate/pkg/authsdk"
	"github.com/aussiebroadwan/authgate/pkg/httpx"
)

// GreetingHandler godoc
//
//	@Summary		Greeting
//	@Description	Returns a greeting naming the port the gateway listens on
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	authsdk.MessageResponse
//	@Router			/ [get].
func GreetingHandler(port string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{
			Message: "Hallo. Port: " + port,
		})
	}
}

// NotFoundHandler answers every request no other route claimed.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authsdk.ErrRouteNotFound.WriteError(w)
	}
}
