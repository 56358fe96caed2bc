package tool

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ferdiebergado/snaptools/internal/catalog"
	errx "github.com/ferdiebergado/snaptools/internal/pkg/error"
	"github.com/ferdiebergado/snaptools/internal/pkg/message"
	"github.com/ferdiebergado/snaptools/internal/pkg/web"
	"github.com/ferdiebergado/snaptools/internal/transform"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type ToolsResponse struct {
	Tools []*catalog.Tool `json:"tools"`
}

type CostsResponse struct {
	Costs []transform.Cost `json:"costs"`
}

type TransformResponse struct {
	Value string `json:"value"`
}

type VerifyResponse struct {
	Matches bool `json:"matches"`
}

type KeygenRequest struct {
	KeySize int `json:"key_size" validate:"cost=rsa_key_size"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	web.RespondOK(w, nil, &HealthResponse{Status: "ok"})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	tools := h.svc.Tools(category)
	if tools == nil {
		tools = []*catalog.Tool{}
	}
	web.RespondOK(w, nil, &ToolsResponse{Tools: tools})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Tool(r.PathValue("category"), r.PathValue("tool"))
	if err != nil {
		respondError(w, err)
		return
	}
	web.RespondOK(w, nil, t)
}

func (h *Handler) Costs(w http.ResponseWriter, r *http.Request) {
	costs, err := h.svc.Costs(r.PathValue("category"), r.PathValue("tool"))
	if err != nil {
		respondError(w, err)
		return
	}
	if costs == nil {
		costs = []transform.Cost{}
	}
	web.RespondOK(w, nil, &CostsResponse{Costs: costs})
}

func (h *Handler) Forward(w http.ResponseWriter, r *http.Request) {
	h.transform(w, r, transform.Forward)
}

func (h *Handler) Backward(w http.ResponseWriter, r *http.Request) {
	h.transform(w, r, transform.Backward)
}

func (h *Handler) transform(w http.ResponseWriter, r *http.Request, dir transform.Direction) {
	in, err := web.ParamsFromContext[Input](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	category, id := r.PathValue("category"), r.PathValue("tool")
	slog.Info("running tool", "category", category, "tool", id, "direction", dir, "input", in)

	out, err := h.svc.Transform(r.Context(), category, id, dir, in)
	if err != nil {
		respondError(w, err)
		return
	}

	msg := "Done."
	web.RespondOK(w, &msg, &TransformResponse{Value: out})
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	in, err := web.ParamsFromContext[VerifyInput](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	res, err := h.svc.Verify(r.Context(), r.PathValue("category"), r.PathValue("tool"), in)
	if err != nil {
		respondError(w, err)
		return
	}

	msg := "Digest matches."
	if !res.Matches {
		msg = "Digest does not match."
	}
	web.RespondOK(w, &msg, &VerifyResponse{Matches: res.Matches})
}

func (h *Handler) GenerateKey(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[KeygenRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	pair, err := h.svc.GenerateRSAKey(r.Context(), req.KeySize)
	if err != nil {
		respondError(w, err)
		return
	}

	msg := "Key pair generated."
	web.RespondCreated(w, &msg, pair)
}

func respondError(w http.ResponseWriter, err error) {
	if reason := errx.ContextReason(err); reason != "" {
		slog.Warn("transform abandoned", "reason", reason)
		web.RespondRequestTimeout(w, err, message.RequestTimeout, nil)
		return
	}

	var terr *transform.Error
	if !errors.As(err, &terr) {
		web.RespondInternalServerError(w, err)
		return
	}

	switch terr.Kind {
	case transform.MissingInput, transform.InvalidLength, transform.InvalidParameter:
		web.RespondUnprocessableEntity(w, err, terr.Kind.Title(), terr.Fields)
	case transform.UnsupportedAlgorithm:
		web.RespondNotFound(w, err, terr.Kind.Title(), nil)
	case transform.TransformFailed:
		web.RespondBadRequest(w, err, terr.Kind.Description(), nil)
	default:
		web.RespondInternalServerError(w, err)
	}
}
