package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/netlist-kl-partitioner/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/partitioner"
	"go.uber.org/zap"
)

// MAX_BODY_BYTES caps a partition request body.
const MAX_BODY_BYTES = 8 << 20

type partitionAPI struct {
	partitionService PartitionService
	log              *zap.Logger
	maxBodyBytes     int64
}

func New(partitionService PartitionService, log *zap.Logger) *partitionAPI {
	return &partitionAPI{
		partitionService: partitionService,
		log:              log,
		maxBodyBytes:     MAX_BODY_BYTES,
	}
}

func (api *partitionAPI) Routes(group *helper.RouteGroup) {
	group.POST("/partition", api.partition)
}

func (api *partitionAPI) partition(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request partitionRequest
		err     error
	)
	r.Body = http.MaxBytesReader(w, r.Body, api.maxBodyBytes)
	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			api.errorResponse(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body must not be larger than %d bytes", maxBytesErr.Limit))
			return
		}
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	var result *partitioner.Result
	if request.Netlist != "" {
		result, err = api.partitionService.PartitionNetlist(r.Context(), request.Netlist, request.Passes, request.OrderByCost)
	} else {
		result, err = api.partitionService.PartitionEdges(r.Context(), request.Vertices, request.edgeList(), request.Passes,
			request.OrderByCost)
	}
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewPartitionResponse(result)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
