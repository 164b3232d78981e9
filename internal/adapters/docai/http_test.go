package docai_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/adapters/docai"
	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
)

func upload() domain.DocumentUpload {
	return domain.DocumentUpload{FileName: "poliza.pdf", Size: 4, Content: []byte("%PDF")}
}

func TestAnalyzeDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("expected multipart body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"summary":"Seguro de viaje","fileName":"poliza.pdf","fileSize":4,"summaryId":"s1"}`))
	}))
	defer srv.Close()

	an, err := docai.NewHTTPAnalyzer(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	sum, err := an.AnalyzeDocument(context.Background(), upload())
	if err != nil {
		t.Fatal(err)
	}
	if sum.Summary != "Seguro de viaje" || sum.ID != "s1" {
		t.Errorf("summary = %+v", sum)
	}
}

func TestAnalyzeDocumentMissingFieldsIsHardError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// HTTP 200 but the required fields are absent.
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"fileSize":4}`))
	}))
	defer srv.Close()

	an, _ := docai.NewHTTPAnalyzer(srv.URL)
	if _, err := an.AnalyzeDocument(context.Background(), upload()); err == nil {
		t.Fatal("missing summary/fileName must be a hard error even on HTTP 200")
	}
}
