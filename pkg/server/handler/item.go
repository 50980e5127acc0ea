package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/smashscrap/marketplace/pkg/database"
	"github.com/smashscrap/marketplace/pkg/model"
	"github.com/smashscrap/marketplace/pkg/service"
)

func ItemListPage(svc service.Item) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "only GET method allowed", http.StatusMethodNotAllowed)
			return
		}

		q := r.URL.Query()

		pageNum, pageSize, err := parsePage(q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		filter, err := parseItemFilter(q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var resp ListPageResp[model.Item]

		resp.Page, resp.Total, err = svc.ListPage(r.Context(), filter, pageNum, pageSize)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func parsePage(q url.Values) (pageNum, pageSize int, err error) {
	pageNum, pageSize = service.DefaultPageNum, service.DefaultPageSize

	if pn := q.Get("page_num"); pn != "" {
		pageNum, err = strconv.Atoi(pn)
		if err != nil {
			return 0, 0, fmt.Errorf("can't parse page_num: %v", err)
		}
	}

	if ps := q.Get("page_size"); ps != "" {
		pageSize, err = strconv.Atoi(ps)
		if err != nil {
			return 0, 0, fmt.Errorf("can't parse page_size: %v", err)
		}
	}

	return pageNum, pageSize, nil
}

func parseItemFilter(q url.Values) (database.ItemFilter, error) {
	var (
		filter database.ItemFilter
		err    error
	)

	if pid := q.Get("package_id"); pid != "" {
		filter.PackageID, err = strconv.Atoi(pid)
		if err != nil {
			return filter, fmt.Errorf("can't parse package_id: %v", err)
		}
	}

	filter.Kind = model.ItemKind(q.Get("kind"))

	if mn := q.Get("min_price"); mn != "" {
		filter.MinPrice, err = decimal.NewFromString(mn)
		if err != nil {
			return filter, fmt.Errorf("can't parse min_price: %v", err)
		}
	}

	if mx := q.Get("max_price"); mx != "" {
		filter.MaxPrice, err = decimal.NewFromString(mx)
		if err != nil {
			return filter, fmt.Errorf("can't parse max_price: %v", err)
		}
	}

	return filter, nil
}
