package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/smashscrap/marketplace/pkg/database"
	"github.com/smashscrap/marketplace/pkg/model"
	"github.com/smashscrap/marketplace/pkg/service"
)

type placeBidReq struct {
	ItemID int             `json:"item_id"`
	UserID int             `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`

	AppraisalCategory string `json:"appraisal_category,omitempty"`
	FullnessApplied   string `json:"fullness_applied,omitempty"`
}

type placeBidResp struct {
	Accepted bool   `json:"accepted"`
	BidID    int    `json:"bid_id,omitempty"`
	Reason   string `json:"reason,omitempty"`

	CurrentPrice string                  `json:"current_price,omitempty"`
	PackageTotal string                  `json:"package_total,omitempty"`
	SaleTotals   map[int]decimal.Decimal `json:"sale_totals,omitempty"`
}

func PlaceBid(svc service.Bidding) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "only POST method allowed", http.StatusMethodNotAllowed)
			return
		}

		var req placeBidReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("can't parse request: %v", err), http.StatusBadRequest)
			return
		}

		if req.ItemID == 0 || req.UserID == 0 {
			http.Error(w, "item_id and user_id are required", http.StatusBadRequest)
			return
		}

		res, err := svc.PlaceBid(r.Context(), service.BidRequest{
			ItemID:            req.ItemID,
			UserID:            req.UserID,
			Amount:            req.Amount,
			AppraisalCategory: req.AppraisalCategory,
			Fullness:          model.Fullness(req.FullnessApplied),
		})

		switch {
		case err == nil:
			resp := placeBidResp{
				Accepted:     true,
				BidID:        res.BidID,
				CurrentPrice: res.NewPrice.StringFixed(2),
				SaleTotals:   res.SaleTotals,
			}
			if res.PackageID != 0 {
				resp.PackageTotal = res.PackageTotal.StringFixed(2)
			}

			writeJSON(w, http.StatusOK, resp)

		case errors.Is(err, service.ErrLimitExceeded):
			writeJSON(w, http.StatusTooManyRequests, placeBidResp{Reason: ReasonLimitExceeded})

		case errors.Is(err, database.ErrNotFound):
			writeJSON(w, http.StatusNotFound, placeBidResp{Reason: ReasonNotFound})

		default:
			if code := reasonCode(err); code != "" {
				writeJSON(w, http.StatusUnprocessableEntity, placeBidResp{Reason: code})
				return
			}

			writeJSON(w, http.StatusInternalServerError, placeBidResp{Reason: ReasonPersistenceError})
		}
	}
}

func BidListForItem(svc service.Bidding) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "only GET method allowed", http.StatusMethodNotAllowed)
			return
		}

		itemID, err := strconv.Atoi(r.URL.Query().Get("item_id"))
		if err != nil {
			http.Error(w, fmt.Sprintf("can't parse item_id: %v", err), http.StatusBadRequest)
			return
		}

		bids, err := svc.ListBids(r.Context(), itemID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, bids)
	}
}
