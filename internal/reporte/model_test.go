package reporte

import "testing"

func TestTransicionValida(t *testing.T) {
	casos := []struct {
		desde, hacia string
		ok           bool
	}{
		{EstadoAbierto, EstadoAsignado, true},
		{EstadoAbierto, EstadoPendienteCierre, true},
		{EstadoAsignado, EstadoPendienteCierre, true},
		{EstadoPendienteCierre, EstadoCerrado, true},
		{EstadoPendienteCierre, EstadoAsignado, true},
		{EstadoCerrado, EstadoAbierto, true},
		{EstadoAbierto, EstadoCerrado, false},
		{EstadoCerrado, EstadoAsignado, false},
		{EstadoAsignado, EstadoAbierto, false},
		{EstadoCerrado, EstadoCerrado, false},
	}

	for _, tc := range casos {
		if got := TransicionValida(tc.desde, tc.hacia); got != tc.ok {
			t.Errorf("TransicionValida(%s, %s) = %v, quiere %v", tc.desde, tc.hacia, got, tc.ok)
		}
	}
}

func TestPrioridadDePeso(t *testing.T) {
	casos := []struct {
		peso int
		want string
	}{
		{1, PrioridadBaja},
		{2, PrioridadMedia},
		{3, PrioridadMedia},
		{4, PrioridadAlta},
		{5, PrioridadAlta},
	}

	for _, tc := range casos {
		if got := PrioridadDePeso(tc.peso); got != tc.want {
			t.Errorf("PrioridadDePeso(%d) = %s, quiere %s", tc.peso, got, tc.want)
		}
	}
}

func TestEsEstadoValido(t *testing.T) {
	for _, estado := range []string{EstadoAbierto, EstadoAsignado, EstadoPendienteCierre, EstadoCerrado} {
		if !EsEstadoValido(estado) {
			t.Errorf("EsEstadoValido(%s) = false", estado)
		}
	}
	if EsEstadoValido("archivado") {
		t.Error("EsEstadoValido(archivado) = true")
	}
}
