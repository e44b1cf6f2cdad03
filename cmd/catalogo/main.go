package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/muniatiende/reportes/internal/catalogo"
)

// Herramienta de soporte para validar e inspeccionar el catálogo
// tipo→dependencia de un municipio antes de desplegarlo.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	_ = godotenv.Load()

	path := strings.TrimSpace(os.Getenv("CATALOGO_PATH"))
	if path == "" {
		path = "catalogo.json"
	}
	if len(os.Args) > 2 {
		path = os.Args[2]
	}

	switch os.Args[1] {
	case "validar":
		if _, err := catalogo.LoadFile(path); err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("catálogo inválido")
		}
		log.Info().Str("path", path).Msg("catálogo válido")
	case "listar":
		cat, err := catalogo.LoadFile(path)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("no se pudo cargar el catálogo")
		}
		for _, dep := range cat.Dependencias() {
			fmt.Printf("%s (%s)\n", dep.Clave, dep.Nombre)
			for i, tipo := range dep.Tipos {
				marca := " "
				if i == 0 {
					marca = "*" // tipo sugerido al reasignar
				}
				fmt.Printf("  %s %s\n", marca, tipo)
			}
		}
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "uso: catalogo <validar|listar> [path]")
}
