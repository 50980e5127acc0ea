package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/smashscrap/marketplace/pkg/model"
	"github.com/smashscrap/marketplace/pkg/service"
)

type ListPageResp[T any] struct {
	Page  []T `json:"page"`
	Total int `json:"total"`
}

// Reason codes reported to the caller on bid rejection.
const (
	ReasonSelfBid          = "SELF_BID"
	ReasonBiddingClosed    = "BIDDING_CLOSED"
	ReasonBelowCurrent     = "BELOW_CURRENT"
	ReasonBelowStarting    = "BELOW_STARTING"
	ReasonInvalidAmount    = "INVALID_AMOUNT"
	ReasonLimitExceeded    = "LIMIT_EXCEEDED"
	ReasonNotFound         = "NOT_FOUND"
	ReasonPersistenceError = "PERSISTENCE_ERROR"
)

var reasonCodes = map[error]string{
	model.ErrSelfBid:            ReasonSelfBid,
	model.ErrBiddingClosed:      ReasonBiddingClosed,
	model.ErrBelowCurrentBid:    ReasonBelowCurrent,
	model.ErrBelowStartingPrice: ReasonBelowStarting,
	model.ErrInvalidAmount:      ReasonInvalidAmount,
	service.ErrLimitExceeded:    ReasonLimitExceeded,
}

// reasonCode maps a rejection to its wire code, empty for non-rejections.
func reasonCode(err error) string {
	for sentinel, code := range reasonCodes {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("can't encode response: %v", err), http.StatusInternalServerError)
	}
}
