package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/RentMarket-Client/internal/calendar"
	"github.com/m04kA/RentMarket-Client/internal/config"
	"github.com/m04kA/RentMarket-Client/internal/domain"
	"github.com/m04kA/RentMarket-Client/internal/integrations/marketservice"
	"github.com/m04kA/RentMarket-Client/internal/service/bookingflow"
	"github.com/m04kA/RentMarket-Client/internal/service/favorites"
	"github.com/m04kA/RentMarket-Client/internal/service/mybookings"
	"github.com/m04kA/RentMarket-Client/internal/session"
	"github.com/m04kA/RentMarket-Client/pkg/httpmetrics"
	"github.com/m04kA/RentMarket-Client/pkg/logger"
	"github.com/m04kA/RentMarket-Client/pkg/ptr"
)

const usage = `rentmarket - терминальный клиент маркетплейса аренды

Usage:
  rentmarket [-config path] <command> [args]

Commands:
  login <token>                 сохранить токен сессии
  logout                        завершить сессию
  products [query]              каталог продуктов
  product <id>                  карточка продукта
  calendar <id> <year> <month>  сетка месяца с занятыми датами продукта
  check <id> <start> <end>      проверить доступность дат (YYYY-MM-DD)
  book <id> <start> <end>       проверить и забронировать даты
  bookings                      мои бронирования
  cancel <bookingId>            отменить бронирование
  fav list                      список избранного
  fav toggle <id>               переключить избранное продукта
  rate <id> <score> [comment]   оценить продукт (1-5)
`

func main() {
	configPath := flag.String("config", "config.toml", "путь к конфигурации")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	// Метрики исходящих запросов (если включены)
	var transport http.RoundTripper
	if cfg.Metrics.Enabled {
		collector := httpmetrics.New(cfg.Metrics.ServiceName)
		transport = collector.RoundTripper(nil)

		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.Handler())
		go func() {
			log.Info("Prometheus metrics exposed at %s%s", cfg.Metrics.Addr, cfg.Metrics.Path)
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				log.Error("Metrics listener failed: %v", err)
			}
		}()
	}

	sess, err := session.NewStore(cfg.Session.TokenFile)
	if err != nil {
		log.Fatal("Failed to open session store: %v", err)
	}

	client := marketservice.NewClient(
		cfg.Backend.BaseURL,
		time.Duration(cfg.Backend.Timeout)*time.Second,
		sess,
		transport,
		log,
	)

	app := &app{cfg: cfg, log: log, sess: sess, client: client}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Duration(cfg.Backend.Timeout)*time.Second)
	defer cancel()

	if err := app.run(ctx, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	cfg    *config.Config
	log    *logger.Logger
	sess   *session.Store
	client *marketservice.Client
}

func (a *app) run(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "login":
		if len(rest) != 1 {
			return fmt.Errorf("usage: login <token>")
		}
		if err := a.sess.SetToken(rest[0]); err != nil {
			return err
		}
		fmt.Println("Сессия сохранена")
		return nil

	case "logout":
		if err := a.sess.Clear(); err != nil {
			return err
		}
		fmt.Println("Сессия завершена")
		return nil

	case "products":
		return a.products(ctx, rest)

	case "product":
		id, err := parseID(rest, 0)
		if err != nil {
			return err
		}
		return a.product(ctx, id)

	case "calendar":
		return a.calendar(ctx, rest)

	case "check":
		id, r, err := parseBookingArgs(rest)
		if err != nil {
			return err
		}
		return a.check(ctx, id, r)

	case "book":
		id, r, err := parseBookingArgs(rest)
		if err != nil {
			return err
		}
		return a.book(ctx, id, r)

	case "bookings":
		return a.bookings(ctx)

	case "cancel":
		id, err := parseID(rest, 0)
		if err != nil {
			return err
		}
		return a.cancel(ctx, id)

	case "fav":
		return a.fav(ctx, rest)

	case "rate":
		return a.rate(ctx, rest)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) products(ctx context.Context, rest []string) error {
	filter := domain.ProductFilter{}
	if len(rest) > 0 {
		filter.Query = ptr.Ptr(rest[0])
	}

	products, err := a.client.ListProducts(ctx, filter)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Println("Ничего не найдено")
		return nil
	}
	for _, p := range products {
		fmt.Printf("%6d  %-40s %8.2f/день  %s\n", p.ID, p.Title, p.PricePerDay, p.City)
	}
	return nil
}

func (a *app) product(ctx context.Context, id int64) error {
	p, err := a.client.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("#%d %s\n", p.ID, p.Title)
	if p.Description != "" {
		fmt.Println(p.Description)
	}
	fmt.Printf("Цена: %.2f/день", p.PricePerDay)
	if p.RatingCount > 0 {
		fmt.Printf("  Рейтинг: %.1f (%d)", p.Rating, p.RatingCount)
	}
	fmt.Println()
	return nil
}

// calendar печатает сетку месяца; дни, занятые бронированиями продукта,
// определяются через проверку доступности каждой недели
func (a *app) calendar(ctx context.Context, rest []string) error {
	if len(rest) != 3 {
		return fmt.Errorf("usage: calendar <id> <year> <month>")
	}
	productID, err := strconv.ParseInt(rest[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid product id %q", rest[0])
	}
	year, err := strconv.Atoi(rest[1])
	if err != nil {
		return fmt.Errorf("invalid year %q", rest[1])
	}
	monthNum, err := strconv.Atoi(rest[2])
	if err != nil || monthNum < 1 || monthNum > 12 {
		return fmt.Errorf("invalid month %q", rest[2])
	}
	month := time.Month(monthNum)

	today := domain.NewDay(time.Now())
	blocked := a.blockedDaysOf(ctx, productID, year, month)
	sel := calendar.NewSelector(today, blocked, nil)

	fmt.Printf("%s %d (продукт %d)\n", month, year, productID)
	fmt.Println("Пн  Вт  Ср  Чт  Пт  Сб  Вс")
	for _, week := range sel.MonthStates(year, month) {
		for _, st := range week {
			switch {
			case st.Day.IsZero():
				fmt.Print("    ")
			case st.Blocked:
				fmt.Print(" X  ")
			default:
				t, _ := st.Day.Time()
				fmt.Printf("%2d  ", t.Day())
			}
		}
		fmt.Println()
	}
	return nil
}

// blockedDaysOf строит занятые дни месяца по подневным проверкам доступности
// Дорогой путь, но публичного списка чужих бронирований у бэкенда нет
func (a *app) blockedDaysOf(ctx context.Context, productID int64, year int, month time.Month) map[domain.Day]struct{} {
	blocked := make(map[domain.Day]struct{})
	today := domain.NewDay(time.Now())

	first := domain.NewDay(time.Date(year, month, 1, 0, 0, 0, 0, time.Local))
	last := first.AddDays(time.Date(year, month, 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, -1).Day() - 1)

	for d := first; !d.After(last); d = d.AddDays(1) {
		if d.Before(today) {
			continue
		}
		res, err := a.client.CheckAvailability(ctx, productID, domain.DateRange{Start: d, End: d})
		if err != nil {
			a.log.Warn("calendar: availability probe for %s failed: %v", d, err)
			continue
		}
		if !res.Available {
			blocked[d] = struct{}{}
		}
	}
	return blocked
}

func (a *app) check(ctx context.Context, productID int64, r domain.DateRange) error {
	flow := bookingflow.NewFlow(productID, a.client, a.log)
	flow.SetRange(r)

	verdict, err := flow.CheckAvailability(ctx)
	if err != nil {
		return err
	}
	if verdict.Available {
		fmt.Printf("Даты %s..%s свободны\n", r.Start, r.End)
	} else {
		fmt.Printf("Даты %s..%s заняты: %s\n", r.Start, r.End, verdict.Message)
	}
	return nil
}

func (a *app) book(ctx context.Context, productID int64, r domain.DateRange) error {
	flow := bookingflow.NewFlow(productID, a.client, a.log)
	flow.SetRange(r)

	verdict, err := flow.CheckAvailability(ctx)
	if err != nil {
		return err
	}
	if !verdict.Available {
		return fmt.Errorf("даты заняты: %s", verdict.Message)
	}

	booking, err := flow.Book(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Бронирование #%d создано: продукт %d, %s..%s, статус %s\n",
		booking.ID, booking.ProductID, booking.StartDate, booking.EndDate, booking.Status)
	return nil
}

func (a *app) bookings(ctx context.Context) error {
	svc := mybookings.NewService(a.client, a.log)
	if err := svc.Refresh(ctx); err != nil {
		return err
	}

	list := svc.List()
	if len(list) == 0 {
		fmt.Println("Бронирований нет")
		return nil
	}
	for _, b := range list {
		fmt.Printf("%6d  продукт %-6d %s..%s  %s\n", b.ID, b.ProductID, b.StartDate, b.EndDate, b.Status)
	}
	return nil
}

func (a *app) cancel(ctx context.Context, id int64) error {
	svc := mybookings.NewService(a.client, a.log)
	if err := svc.Refresh(ctx); err != nil {
		return err
	}
	if err := svc.Cancel(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Бронирование #%d отменено\n", id)
	return nil
}

func (a *app) fav(ctx context.Context, rest []string) error {
	if len(rest) == 0 {
		return fmt.Errorf("usage: fav list | fav toggle <id>")
	}

	svc := favorites.NewService(a.client, a.log)
	svc.Load(ctx)

	switch rest[0] {
	case "list":
		ids := svc.All()
		if len(ids) == 0 {
			fmt.Println("Избранное пусто")
			return nil
		}
		for _, id := range ids {
			fmt.Printf("%6d\n", id)
		}
		return nil

	case "toggle":
		id, err := parseID(rest, 1)
		if err != nil {
			return err
		}
		fav, err := svc.Toggle(ctx, id)
		if err != nil {
			return err
		}
		if fav {
			fmt.Printf("Продукт %d добавлен в избранное\n", id)
		} else {
			fmt.Printf("Продукт %d удалён из избранного\n", id)
		}
		return nil

	default:
		return fmt.Errorf("unknown fav subcommand %q", rest[0])
	}
}

func (a *app) rate(ctx context.Context, rest []string) error {
	if len(rest) < 2 {
		return fmt.Errorf("usage: rate <id> <score> [comment]")
	}
	id, err := parseID(rest, 0)
	if err != nil {
		return err
	}
	score, err := strconv.Atoi(rest[1])
	if err != nil || score < 1 || score > 5 {
		return fmt.Errorf("score must be 1-5")
	}
	comment := ""
	if len(rest) > 2 {
		comment = rest[2]
	}

	if err := a.client.SubmitRating(ctx, id, score, comment); err != nil {
		return err
	}
	fmt.Println("Оценка сохранена")
	return nil
}

func parseID(rest []string, pos int) (int64, error) {
	if len(rest) <= pos {
		return 0, fmt.Errorf("missing id argument")
	}
	id, err := strconv.ParseInt(rest[pos], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", rest[pos])
	}
	return id, nil
}

func parseBookingArgs(rest []string) (int64, domain.DateRange, error) {
	if len(rest) != 3 {
		return 0, domain.DateRange{}, fmt.Errorf("expected <id> <start> <end>")
	}
	id, err := parseID(rest, 0)
	if err != nil {
		return 0, domain.DateRange{}, err
	}
	start, err := domain.ParseDay(rest[1])
	if err != nil {
		return 0, domain.DateRange{}, err
	}
	end, err := domain.ParseDay(rest[2])
	if err != nil {
		return 0, domain.DateRange{}, err
	}
	if end.Before(start) {
		// Нормализуем так же, как календарь: ранняя дата становится началом
		start, end = end, start
	}
	return id, domain.DateRange{Start: start, End: end}, nil
}
