package main

import (
	"BoatSharing/bot"
	"BoatSharing/bot/chat"
	"BoatSharing/bot/workflows/booking"
	"BoatSharing/impl/core"
	"BoatSharing/internal/config"
	repository "BoatSharing/internal/database"
	"BoatSharing/internal/http-server/api"
	"BoatSharing/internal/lib/logger"
	"BoatSharing/internal/lib/sl"
	"BoatSharing/internal/service/submission"
	"BoatSharing/internal/storage/sheets"
	"BoatSharing/internal/ws"
	"context"
	"flag"
	"log/slog"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	tgBot, err := bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminIds, lg)
	if err != nil {
		lg.Error("failed to initialize telegram bot", sl.Err(err))
		return
	}
	// Errors from any component end up in the admin chat.
	lg = logger.SetupTelegramHandler(lg, tgBot, slog.LevelError)
	lg.With(
		slog.String("bot_name", conf.Telegram.BotName),
	).Info("telegram bot initialized")

	lg.Info("starting boatsharing", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	handler := core.New(lg)
	handler.SetAuthKey(conf.Listen.ApiKey)

	var sessions chat.SessionStorage = chat.NewMemorySessionStorage()
	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("mongo client")
	}
	if db != nil {
		sessions = chat.NewMongoSessionStorage(db)
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo session storage initialized")
	}

	store, err := sheets.New(context.Background(), conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("sheets store")
	}

	svc := submission.NewService(store, tgBot, conf.Telegram.AdminIds, lg)
	if store != nil {
		handler.SetRecordStore(store)
		lg.With(
			slog.String("spreadsheet", conf.Sheets.SpreadsheetId),
			slog.String("sheet", conf.Sheets.SheetName),
		).Info("sheets store initialized")
	}
	handler.SetSubmissionCounter(svc)

	hub := ws.NewHub(lg)
	go hub.Run()
	svc.SetListener(hub)

	engine := chat.NewEngine(sessions, lg)
	engine.RegisterWorkflow(booking.NewBookingWorkflow(svc, lg))
	tgBot.SetEngine(engine)

	go func() {
		if err := tgBot.Start(); err != nil {
			lg.Error("telegram bot error", sl.Err(err))
		}
	}()

	// *** blocking start with http server ***
	err = api.New(conf, lg, handler, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
