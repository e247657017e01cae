package solat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

const cityPage = `<html><body>
<form>
  <select id="cityid" name="cityid">
    <option value="">Select city</option>
    <option value="1">  Dubai </option>
    <option value="2">Hatta</option>
    <option value="abc">Broken</option>
    <option value="4">Jebel
        Ali</option>
  </select>
</form>
</body></html>`

func TestWebParserParse(t *testing.T) {
	wp := &WebParser{}
	cities, err := wp.Parse(cityPage)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	want := []City{{ID: 1, Name: "Dubai"}, {ID: 2, Name: "Hatta"}, {ID: 4, Name: "Jebel Ali"}}
	if !reflect.DeepEqual(cities, want) {
		t.Errorf("Parse() = %v, want %v", cities, want)
	}
}

func TestWebParserParseByName(t *testing.T) {
	wp := &WebParser{}
	cities, err := wp.Parse(`<select name="cityid"><option value="7">Lahbab</option></select>`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(cities) != 1 || cities[0].ID != 7 {
		t.Errorf("unexpected cities %v", cities)
	}
}

func TestWebParserParseMissingSelect(t *testing.T) {
	wp := &WebParser{}
	if _, err := wp.Parse(`<html><select id="zone"></select></html>`); err == nil {
		t.Error("expected error when city select is missing")
	}
}

func TestWebParserGetRawData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cities" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(cityPage))
	}))
	defer server.Close()

	wp := &WebParser{HTTPClient: server.Client()}
	html, err := wp.GetRawData(context.Background(), server.URL+"/cities")
	if err != nil {
		t.Fatalf("GetRawData() error: %v", err)
	}
	if html != cityPage {
		t.Error("GetRawData() returned unexpected body")
	}

	if _, err := wp.GetRawData(context.Background(), server.URL+"/missing"); err == nil {
		t.Error("expected error for 404")
	}
}
