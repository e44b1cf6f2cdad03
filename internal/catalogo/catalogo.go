package catalogo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrTipoDesconocido se devuelve cuando el tipo no existe en el catálogo.
	ErrTipoDesconocido = errors.New("tipo de reporte desconocido")
	// ErrDependenciaDesconocida se devuelve cuando la dependencia no existe.
	ErrDependenciaDesconocida = errors.New("dependencia desconocida")
)

// Dependencia agrupa los tipos de reporte que atiende una unidad municipal.
// El orden de Tipos importa: el primero es el tipo sugerido al reasignar.
type Dependencia struct {
	Clave  string   `json:"clave"`
	Nombre string   `json:"nombre"`
	Tipos  []string `json:"tipos"`
}

type archivo struct {
	Dependencias []Dependencia `json:"dependencias"`
}

// Catalogo resuelve el ruteo tipo→dependencia y su inverso. Es inyectable:
// cada municipio carga su propia taxonomía sin tocar el motor.
type Catalogo struct {
	dependencias []Dependencia
	porTipo      map[string]string
	porClave     map[string]Dependencia
}

// New construye el catálogo a partir de las dependencias dadas, validando
// que ningún tipo pertenezca a dos dependencias.
func New(dependencias []Dependencia) (*Catalogo, error) {
	if len(dependencias) == 0 {
		return nil, errors.New("catálogo vacío")
	}

	c := &Catalogo{
		porTipo:  make(map[string]string),
		porClave: make(map[string]Dependencia),
	}

	for _, dep := range dependencias {
		clave := strings.ToLower(strings.TrimSpace(dep.Clave))
		if clave == "" {
			return nil, errors.New("dependencia sin clave")
		}
		if _, ok := c.porClave[clave]; ok {
			return nil, fmt.Errorf("dependencia duplicada: %s", clave)
		}
		if len(dep.Tipos) == 0 {
			return nil, fmt.Errorf("dependencia %s sin tipos", clave)
		}

		tipos := make([]string, 0, len(dep.Tipos))
		for _, tipo := range dep.Tipos {
			tipo = strings.ToLower(strings.TrimSpace(tipo))
			if tipo == "" {
				return nil, fmt.Errorf("tipo vacío en dependencia %s", clave)
			}
			if otra, ok := c.porTipo[tipo]; ok {
				return nil, fmt.Errorf("tipo %s asignado a %s y %s", tipo, otra, clave)
			}
			c.porTipo[tipo] = clave
			tipos = append(tipos, tipo)
		}

		normalizada := Dependencia{Clave: clave, Nombre: strings.TrimSpace(dep.Nombre), Tipos: tipos}
		c.porClave[clave] = normalizada
		c.dependencias = append(c.dependencias, normalizada)
	}

	return c, nil
}

// LoadFile lee y valida el catálogo desde un archivo JSON.
func LoadFile(path string) (*Catalogo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catálogo: %w", err)
	}

	var f archivo
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catálogo: %w", err)
	}

	return New(f.Dependencias)
}

// DependenciaDeTipo devuelve la dependencia responsable del tipo.
func (c *Catalogo) DependenciaDeTipo(tipo string) (string, error) {
	dep, ok := c.porTipo[strings.ToLower(strings.TrimSpace(tipo))]
	if !ok {
		return "", ErrTipoDesconocido
	}
	return dep, nil
}

// TiposDe lista los tipos que atiende la dependencia, en orden del catálogo.
func (c *Catalogo) TiposDe(clave string) ([]string, error) {
	dep, ok := c.porClave[strings.ToLower(strings.TrimSpace(clave))]
	if !ok {
		return nil, ErrDependenciaDesconocida
	}
	out := make([]string, len(dep.Tipos))
	copy(out, dep.Tipos)
	return out, nil
}

// TipoSugerido devuelve el primer tipo del conjunto de la dependencia.
func (c *Catalogo) TipoSugerido(clave string) (string, error) {
	dep, ok := c.porClave[strings.ToLower(strings.TrimSpace(clave))]
	if !ok {
		return "", ErrDependenciaDesconocida
	}
	return dep.Tipos[0], nil
}

// EsTipoValido indica si el tipo pertenece a la dependencia.
func (c *Catalogo) EsTipoValido(tipo, clave string) bool {
	dep, err := c.DependenciaDeTipo(tipo)
	if err != nil {
		return false
	}
	return dep == strings.ToLower(strings.TrimSpace(clave))
}

// Dependencias devuelve las dependencias en el orden declarado.
func (c *Catalogo) Dependencias() []Dependencia {
	out := make([]Dependencia, len(c.dependencias))
	copy(out, c.dependencias)
	return out
}
