// Command token mints a bearer token for local testing against the API.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/wb-go/wbf/zlog"

	"github.com/OlivierMantz/CommentAPI/internal/auth"
	"github.com/OlivierMantz/CommentAPI/internal/config"
	"github.com/OlivierMantz/CommentAPI/internal/domain"
)

func main() {
	var (
		configPath = pflag.StringP("config", "c", "", "path to config.yaml")
		subject    = pflag.StringP("subject", "s", "", "caller id placed in the sub claim")
		roles      = pflag.StringSliceP("role", "r", []string{"user"}, "roles to grant (user, admin)")
		ttl        = pflag.Duration("ttl", time.Hour, "token lifetime")
	)
	pflag.Parse()

	zlog.Init()

	if *subject == "" {
		fmt.Fprintln(os.Stderr, "--subject is required")
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Read(*configPath)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Auth.Secret == "" {
		zlog.Logger.Fatal().Msg("auth.secret is not set (config file or JWT_SECRET env)")
	}

	granted := make([]domain.Role, 0, len(*roles))
	for _, name := range *roles {
		r, ok := domain.ParseRole(name)
		if !ok {
			zlog.Logger.Fatal().Str("role", name).Msg("unknown role")
		}
		granted = append(granted, r)
	}

	issuer := auth.NewTokenIssuer(auth.Options{
		Secret:     []byte(cfg.Auth.Secret),
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
		RolesClaim: cfg.Auth.RolesClaim,
	}, *ttl)

	token, err := issuer.Issue(*subject, granted...)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to sign token")
	}
	fmt.Println(token)
}
