package handler

import (
	"net/http"

	"github.com/smashscrap/marketplace/pkg/model"
	"github.com/smashscrap/marketplace/pkg/service"
)

func SaleListPage(svc service.Sale) http.HandlerFunc {
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

		status := model.SaleStatus(q.Get("status"))

		var resp ListPageResp[model.Sale]

		resp.Page, resp.Total, err = svc.ListPage(r.Context(), status, pageNum, pageSize)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func PackageListPage(svc service.Package) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "only GET method allowed", http.StatusMethodNotAllowed)
			return
		}

		pageNum, pageSize, err := parsePage(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var resp ListPageResp[model.Package]

		resp.Page, resp.Total, err = svc.ListPage(r.Context(), pageNum, pageSize)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
