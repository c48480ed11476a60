package main

import (
	"net/http"
	"os"

	"daytrack/internal/config"
	"daytrack/internal/logging"
	"daytrack/internal/serverapp"
)

func main() {
	env, err := config.ReadEnv()
	if err != nil {
		os.Stderr.WriteString("read environment: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logging.New("daytrack", env.LogLevel)

	cfg, err := config.Load("daytrack.yml")
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	cfg.ApplyEnv(env)

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config: cfg,
		Logger: log,
	})
	if err != nil {
		log.WithError(err).Fatal("build server")
	}

	log.WithField("addr", cfg.Server.Addr).Info("listening")
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, handler))
}
