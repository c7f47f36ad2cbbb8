// token emite un JWT de desarrollo firmado con la configuración de la app (JWT_SECRET, JWT_ISSUER, JWT_EXPIRATION).
//
// Uso: go run ./cmd/token -user <id> -role admin|operador
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/jhoicas/prateleira-api/pkg/config"
	"github.com/jhoicas/prateleira-api/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "ID del usuario (por defecto un UUID nuevo)")
	role := flag.String("role", jwt.RoleOperator, "rol: admin u operador")
	flag.Parse()

	if *role != jwt.RoleAdmin && *role != jwt.RoleOperator {
		fmt.Fprintf(os.Stderr, "Rol desconocido %q\n", *role)
		os.Exit(2)
	}
	if *userID == "" {
		*userID = uuid.NewString()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, *userID, *role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
