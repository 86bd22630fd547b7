package handler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/msomdec/customer-desk/internal/service"
	"github.com/msomdec/customer-desk/internal/view"
)

const maxImportBytes = 10 << 20

// HandleExport downloads every customer as customers.csv.
func (h *CustomerHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	n, err := h.customers.Export(r.Context(), &buf)
	if err != nil {
		slog.Error("export customers", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	slog.Info("customers exported", "rows", n)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="customers.csv"`)
	w.Header().Set("X-Exported-Rows", strconv.Itoa(n))
	w.Write(buf.Bytes())
}

// HandleImport reads the uploaded "file" field and shows the import report.
func (h *CustomerHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	report, status, msg := h.importUpload(w, r)
	if report == nil {
		renderError(w, r, status, msg)
		return
	}
	view.ImportResultPage(user.DisplayName, report).Render(r.Context(), w)
}

// importUpload runs an import from the multipart "file" field. On failure
// the report is nil and status and message describe the problem.
func (h *CustomerHandler) importUpload(w http.ResponseWriter, r *http.Request) (*service.ImportReport, int, string) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, http.StatusRequestEntityTooLarge, "The CSV file is too large."
		}
		return nil, http.StatusBadRequest, "Choose a CSV file to import."
	}
	defer file.Close()

	report, err := h.customers.Import(r.Context(), file)
	if err != nil {
		slog.Error("import customers", "batch", report.BatchID, "error", err)
		return nil, http.StatusBadRequest, "The CSV file could not be read."
	}
	return report, http.StatusOK, report.Message()
}
