package catalogo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testDependencias() []Dependencia {
	return []Dependencia{
		{Clave: "obras_publicas", Nombre: "Obras Públicas", Tipos: []string{"bache", "banqueta_danada"}},
		{Clave: "servicios_publicos", Nombre: "Servicios Públicos", Tipos: []string{"fuga_agua", "alumbrado"}},
	}
}

func TestNewResuelveRuteo(t *testing.T) {
	c, err := New(testDependencias())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	dep, err := c.DependenciaDeTipo("bache")
	if err != nil {
		t.Fatalf("DependenciaDeTipo: %v", err)
	}
	if dep != "obras_publicas" {
		t.Fatalf("esperaba obras_publicas, got %s", dep)
	}

	sugerido, err := c.TipoSugerido("servicios_publicos")
	if err != nil {
		t.Fatalf("TipoSugerido: %v", err)
	}
	if sugerido != "fuga_agua" {
		t.Fatalf("esperaba fuga_agua, got %s", sugerido)
	}

	if !c.EsTipoValido("alumbrado", "servicios_publicos") {
		t.Fatal("alumbrado debería ser válido para servicios_publicos")
	}
	if c.EsTipoValido("bache", "servicios_publicos") {
		t.Fatal("bache no pertenece a servicios_publicos")
	}
}

func TestNewRechazaTipoDuplicado(t *testing.T) {
	deps := testDependencias()
	deps[1].Tipos = append(deps[1].Tipos, "bache")

	if _, err := New(deps); err == nil {
		t.Fatal("esperaba error por tipo duplicado")
	}
}

func TestTipoDesconocido(t *testing.T) {
	c, err := New(testDependencias())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.DependenciaDeTipo("grafiti"); !errors.Is(err, ErrTipoDesconocido) {
		t.Fatalf("esperaba ErrTipoDesconocido, got %v", err)
	}
	if _, err := c.TipoSugerido("parques"); !errors.Is(err, ErrDependenciaDesconocida) {
		t.Fatalf("esperaba ErrDependenciaDesconocida, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogo.json")
	payload := `{"dependencias":[{"clave":"obras_publicas","nombre":"Obras","tipos":["bache"]}]}`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	tipos, err := c.TiposDe("obras_publicas")
	if err != nil {
		t.Fatalf("TiposDe: %v", err)
	}
	if len(tipos) != 1 || tipos[0] != "bache" {
		t.Fatalf("tipos inesperados: %v", tipos)
	}
}
