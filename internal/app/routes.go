package app

import (
	"net/http"

	"github.com/ferdiebergado/snaptools/internal/middleware"
	"github.com/ferdiebergado/snaptools/internal/platform/router"
	"github.com/ferdiebergado/snaptools/internal/platform/validation"
	"github.com/ferdiebergado/snaptools/internal/tool"
)

const toolPath = "/tools/{category}/{tool}"

func mountToolRoutes(r router.Router, handler *tool.Handler, validator validation.Validator, maxBodySize int64) {
	r.Get("/health", handler.Health)

	r.Get("/tools", handler.List)
	r.Get(toolPath, handler.Show)
	r.Get(toolPath+"/costs", handler.Costs)

	r.Post(toolPath+"/forward", handler.Forward,
		middleware.DecodePayload[tool.Input](maxBodySize),
		middleware.ValidateInput[tool.Input](validator))
	r.Post(toolPath+"/backward", handler.Backward,
		middleware.DecodePayload[tool.Input](maxBodySize),
		middleware.ValidateInput[tool.Input](validator))
	r.Post(toolPath+"/verify", handler.Verify,
		middleware.DecodePayload[tool.VerifyInput](maxBodySize),
		middleware.ValidateInput[tool.VerifyInput](validator))
	r.Post("/keys/rsa", handler.GenerateKey,
		middleware.DecodePayload[tool.KeygenRequest](maxBodySize),
		middleware.ValidateInput[tool.KeygenRequest](validator))

	// Preflight requests are answered by the CORS middleware before they
	// reach this handler.
	for _, pattern := range []string{toolPath + "/forward", toolPath + "/backward", toolPath + "/verify", "/keys/rsa"} {
		r.Options(pattern, preflight)
	}
}

func preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
