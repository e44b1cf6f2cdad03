package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIdentityFromClaims(t *testing.T) {
	m := NewJWTManager("secreto-de-prueba", time.Minute)
	id := uuid.New()

	token, _, err := m.GenerateAccessToken(id.String(), "Flor", "Supervisor", "Obras_Publicas")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := m.ParseAndValidate(token)
	if err != nil {
		t.Fatalf("ParseAndValidate: %v", err)
	}

	identity, err := IdentityFromClaims(claims)
	if err != nil {
		t.Fatalf("IdentityFromClaims: %v", err)
	}
	if identity.ID != id {
		t.Fatalf("id esperado %s, got %s", id, identity.ID)
	}
	if identity.Rol != RolSupervisor {
		t.Fatalf("rol esperado supervisor, got %s", identity.Rol)
	}
	if identity.Dependencia != "obras_publicas" {
		t.Fatalf("dependencia esperada obras_publicas, got %s", identity.Dependencia)
	}
}

func TestIdentityFromClaimsRolDesconocido(t *testing.T) {
	claims := &Claims{Rol: "alcalde"}
	claims.Subject = uuid.NewString()

	if _, err := IdentityFromClaims(claims); err == nil {
		t.Fatal("esperaba error por rol desconocido")
	}
}

func TestParseAndValidateRechazaFirmaAjena(t *testing.T) {
	emisor := NewJWTManager("secreto-a", time.Minute)
	receptor := NewJWTManager("secreto-b", time.Minute)

	token, _, err := emisor.GenerateAccessToken(uuid.NewString(), "Flor", RolFuncionario, "obras_publicas")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := receptor.ParseAndValidate(token); err == nil {
		t.Fatal("esperaba rechazo de firma ajena")
	}
}

func TestPuedeSupervisar(t *testing.T) {
	supervisor := Identity{Rol: RolSupervisor, Dependencia: "obras_publicas"}
	admin := Identity{Rol: RolAdmin}
	funcionario := Identity{Rol: RolFuncionario, Dependencia: "obras_publicas"}

	if !supervisor.PuedeSupervisar("obras_publicas") {
		t.Error("supervisor debe poder supervisar su dependencia")
	}
	if supervisor.PuedeSupervisar("servicios_publicos") {
		t.Error("supervisor no debe supervisar otra dependencia")
	}
	if !admin.PuedeSupervisar("servicios_publicos") {
		t.Error("admin supervisa cualquier dependencia")
	}
	if funcionario.PuedeSupervisar("obras_publicas") {
		t.Error("funcionario no supervisa")
	}
}
