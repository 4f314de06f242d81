package dialog

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"hotelsLookerBot/internal/domain/models"
	"hotelsLookerBot/internal/hotelsapi"
	"hotelsLookerBot/internal/session"
)

type sentMsg struct {
	chatID int64
	text   string
	menu   *Menu
}

type fakeTransport struct {
	nextID  int
	sent    []sentMsg
	edits   []sentMsg
	deleted []models.MessageRef
	media   [][]Media
	photos  []string
}

func (t *fakeTransport) SendText(_ context.Context, chatID int64, text string, menu *Menu) (models.MessageRef, error) {
	t.nextID++
	t.sent = append(t.sent, sentMsg{chatID: chatID, text: text, menu: menu})
	return models.MessageRef{ChatID: chatID, MessageID: t.nextID}, nil
}

func (t *fakeTransport) EditText(_ context.Context, ref models.MessageRef, text string, menu *Menu) error {
	t.edits = append(t.edits, sentMsg{chatID: ref.ChatID, text: text, menu: menu})
	return nil
}

func (t *fakeTransport) DeleteMessage(_ context.Context, ref models.MessageRef) error {
	t.deleted = append(t.deleted, ref)
	return nil
}

func (t *fakeTransport) SendPhoto(_ context.Context, _ int64, url string, _ string) error {
	t.photos = append(t.photos, url)
	return nil
}

func (t *fakeTransport) SendMediaGroup(_ context.Context, _ int64, media []Media) error {
	t.media = append(t.media, media)
	return nil
}

func (t *fakeTransport) lastText() string {
	if len(t.sent) == 0 {
		return ""
	}
	return t.sent[len(t.sent)-1].text
}

type fakeAPI struct {
	regions     []models.Region
	hotels      []models.Hotel
	summary     *models.HotelSummary
	offerParams []hotelsapi.OfferParams
}

func (a *fakeAPI) SearchRegions(context.Context, string) ([]models.Region, error) {
	return a.regions, nil
}

func (a *fakeAPI) SearchHotels(_ context.Context, p hotelsapi.OfferParams) ([]models.Hotel, error) {
	a.offerParams = append(a.offerParams, p)
	hotels := make([]models.Hotel, len(a.hotels))
	copy(hotels, a.hotels)
	hotelsapi.SortHotels(hotels, p.SortMethod)
	return hotels, nil
}

func (a *fakeAPI) FetchHotelSummary(context.Context, string) (*models.HotelSummary, error) {
	return a.summary, nil
}

type fakeRepo struct {
	configs map[int64]models.UserConfig
	history []models.HistoryRecord
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{configs: make(map[int64]models.UserConfig)}
}

func (r *fakeRepo) GetConfig(_ context.Context, userID int64) (*models.UserConfig, error) {
	cfg, ok := r.configs[userID]
	if !ok {
		return nil, nil
	}
	return &cfg, nil
}

func (r *fakeRepo) SaveConfig(_ context.Context, cfg *models.UserConfig) error {
	r.configs[cfg.UserID] = *cfg
	return nil
}

func (r *fakeRepo) UpdateConfig(_ context.Context, cfg *models.UserConfig) error {
	r.configs[cfg.UserID] = *cfg
	return nil
}

func (r *fakeRepo) AppendHistory(_ context.Context, rec *models.HistoryRecord) error {
	r.history = append(r.history, *rec)
	return nil
}

func (r *fakeRepo) History(_ context.Context, userID int64, limit int) ([]models.HistoryRecord, error) {
	var records []models.HistoryRecord
	for i := len(r.history) - 1; i >= 0 && len(records) < limit; i-- {
		if r.history[i].UserID == userID {
			records = append(records, r.history[i])
		}
	}
	return records, nil
}

func testRegions() []models.Region {
	return []models.Region{
		{ID: "2637", Name: "Manchester", Type: models.RegionCity, CountryCode: "GB", CountryName: "Великобритания"},
		{ID: "5571", Name: "Manchester Airport", Type: models.RegionAirport, CountryCode: "GB", CountryName: "Великобритания"},
	}
}

func testHotels() []models.Hotel {
	return []models.Hotel{
		{ID: "100", Name: "Budget Inn", Price: 50, Currency: "USD", Distance: 3, DistanceUnit: "MILE", BestDealScore: 2.5},
		{ID: "200", Name: "Central Plaza", Price: 120, Currency: "USD", Distance: 0.5, DistanceUnit: "MILE", BestDealScore: 70},
		{ID: "300", Name: "Grand Palace", Price: 300, Currency: "USD", Distance: 1, DistanceUnit: "MILE", BestDealScore: 250.5},
	}
}

func testEngine(api *fakeAPI, repo *fakeRepo) (*Engine, *fakeTransport, *session.Store) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := session.NewStore(log, repo)
	chat := &fakeTransport{}
	return New(log, api, sessions, chat), chat, sessions
}

func message(text string) Incoming {
	return Incoming{UserID: 42, ChatID: 42, DisplayName: "tester", Text: text}
}

func command(name, args string) Incoming {
	in := message(args)
	in.Command = name
	in.Args = args
	return in
}

func TestFullSearchScenario(t *testing.T) {
	api := &fakeAPI{
		regions: testRegions(),
		hotels:  testHotels(),
		summary: &models.HotelSummary{
			ID:          "100",
			Name:        "Budget Inn",
			Address:     "1 Main St",
			ImageURLs:   []string{"http://img/1", "http://img/2", "http://img/3", "http://img/4"},
			MapImageURL: "http://img/map",
		},
	}
	repo := newFakeRepo()
	engine, chat, sessions := testEngine(api, repo)
	ctx := context.Background()

	engine.HandleMessage(ctx, command("fillform", ""))
	form := sessions.Form(42)
	if form.State != models.StateAwaitingRegionName {
		t.Fatalf("после /fillform состояние %q", form.State)
	}

	engine.HandleMessage(ctx, message("manchester"))
	if form.State != models.StateAwaitingRegionIndex {
		t.Fatalf("после ввода региона состояние %q", form.State)
	}
	if len(form.RegionCandidates) != 2 {
		t.Fatalf("кандидатов региона %d, ожидалось 2", len(form.RegionCandidates))
	}

	engine.HandleMessage(ctx, message("1"))
	if form.State != models.StateAwaitingDates {
		t.Fatalf("после выбора региона состояние %q", form.State)
	}
	if form.Region == nil || form.Region.ID != "2637" {
		t.Fatalf("выбран регион %+v", form.Region)
	}

	engine.HandleMessage(ctx, message("02/02/2023 05/02/2023"))
	if form.State != models.StateAwaitingAdults {
		t.Fatalf("после ввода дат состояние %q", form.State)
	}
	if nights := form.Nights(); nights != 4 {
		t.Fatalf("ночей %d, ожидалось 4", nights)
	}

	engine.HandleMessage(ctx, message("2"))
	if form.State != models.StateAwaitingChildren {
		t.Fatalf("после ввода взрослых состояние %q", form.State)
	}

	engine.HandleMessage(ctx, message("0"))
	if form.State != models.StateAwaitingHotelIndex {
		t.Fatalf("после ввода детей состояние %q", form.State)
	}
	if len(form.Children) != 0 {
		t.Fatalf("детей %v, ожидался пустой список", form.Children)
	}
	if len(api.offerParams) != 1 {
		t.Fatalf("запросов отелей %d", len(api.offerParams))
	}
	if p := api.offerParams[0]; p.RegionID != "2637" || p.Adults != 2 || p.ResultLimit != models.DefaultResultLimit {
		t.Fatalf("параметры запроса отелей %+v", p)
	}

	engine.HandleMessage(ctx, message("1"))
	if form.State != models.StateIdle {
		t.Fatalf("после выбора отеля состояние %q", form.State)
	}
	if len(repo.history) != 1 {
		t.Fatalf("записей истории %d", len(repo.history))
	}
	if repo.history[0].Snapshot.Hotel.ID != "100" {
		t.Fatalf("в истории отель %q", repo.history[0].Snapshot.Hotel.ID)
	}

	cfg := sessions.Config(ctx, 42)
	if cfg.LastQuery == nil || cfg.LastQuery.Hotel.Name != "Budget Inn" {
		t.Fatalf("последний запрос %+v", cfg.LastQuery)
	}
	if chat.lastText() != msgFinish {
		t.Fatalf("последнее сообщение %q", chat.lastText())
	}
	if len(chat.photos) != 1 || chat.photos[0] != "http://img/map" {
		t.Fatalf("отправлены карты %v", chat.photos)
	}

	engine.HandleMessage(ctx, command("showimage", "2"))
	if len(chat.media) != 1 || len(chat.media[0]) != 2 {
		t.Fatalf("медиагруппы %v", chat.media)
	}

	engine.HandleMessage(ctx, command("history", ""))
	if !strings.Contains(chat.lastText(), "Budget Inn") {
		t.Fatalf("в истории нет отеля: %q", chat.lastText())
	}
}

func TestCancelFromEveryState(t *testing.T) {
	states := []models.DialogState{
		models.StateAwaitingRegionName,
		models.StateAwaitingRegionIndex,
		models.StateAwaitingDates,
		models.StateAwaitingAdults,
		models.StateAwaitingChildren,
		models.StateAwaitingHotelIndex,
		models.StateAwaitingConfig,
	}

	for _, state := range states {
		t.Run(string(state), func(t *testing.T) {
			engine, chat, sessions := testEngine(&fakeAPI{}, newFakeRepo())
			form := sessions.Form(42)
			form.State = state

			engine.HandleMessage(context.Background(), command("cancel", ""))

			if form.State != models.StateIdle {
				t.Fatalf("после /cancel состояние %q", form.State)
			}
			if chat.lastText() != msgInfoCancel {
				t.Fatalf("последнее сообщение %q", chat.lastText())
			}
		})
	}
}

func TestCancelWithoutActiveForm(t *testing.T) {
	engine, chat, sessions := testEngine(&fakeAPI{}, newFakeRepo())

	engine.HandleMessage(context.Background(), command("cancel", ""))

	if chat.lastText() != msgNotInCancel {
		t.Fatalf("последнее сообщение %q", chat.lastText())
	}
	if sessions.Form(42).State != models.StateIdle {
		t.Fatalf("состояние изменилось")
	}
}

func TestWarningReplacesPrevious(t *testing.T) {
	engine, chat, sessions := testEngine(&fakeAPI{}, newFakeRepo())
	ctx := context.Background()

	engine.HandleMessage(ctx, command("fillform", ""))
	engine.HandleMessage(ctx, message("123"))
	form := sessions.Form(42)
	if form.WarningMsg == nil {
		t.Fatal("предупреждение не запомнено")
	}
	first := *form.WarningMsg

	engine.HandleMessage(ctx, message("456"))
	if len(chat.deleted) == 0 || chat.deleted[len(chat.deleted)-1] != first {
		t.Fatalf("первое предупреждение не удалено: %v", chat.deleted)
	}
	if form.WarningMsg == nil || *form.WarningMsg == first {
		t.Fatal("новое предупреждение не запомнено")
	}
	if !strings.Contains(chat.lastText(), msgSwearWord) {
		t.Fatalf("повторное предупреждение без пометки: %q", chat.lastText())
	}

	engine.HandleMessage(ctx, message("manchester"))
	if form.WarningMsg != nil {
		t.Fatal("предупреждение не снято после валидного ввода")
	}
}

func TestSortKeepsStateAndReordersInPlace(t *testing.T) {
	engine, chat, sessions := testEngine(&fakeAPI{}, newFakeRepo())
	form := sessions.Form(42)
	form.State = models.StateAwaitingHotelIndex
	form.HotelCandidates = testHotels()
	form.SortMethod = models.SortLowPrice
	form.MenuMsg = &models.MessageRef{ChatID: 42, MessageID: 7}

	engine.HandleMessage(context.Background(), command(models.SortHighPrice, ""))

	if form.State != models.StateAwaitingHotelIndex {
		t.Fatalf("состояние изменилось: %q", form.State)
	}
	if form.SortMethod != models.SortHighPrice {
		t.Fatalf("метод сортировки %q", form.SortMethod)
	}
	if form.HotelCandidates[0].Name != "Grand Palace" {
		t.Fatalf("первый отель после сортировки %q", form.HotelCandidates[0].Name)
	}
	if len(chat.edits) != 1 {
		t.Fatalf("меню не отредактировано: %d правок", len(chat.edits))
	}
	if len(chat.sent) != 0 {
		t.Fatalf("вместо правки отправлено новое сообщение: %v", chat.sent)
	}
}

func TestSortOutsideHotelChoice(t *testing.T) {
	engine, chat, _ := testEngine(&fakeAPI{}, newFakeRepo())

	engine.HandleMessage(context.Background(), command(models.SortBestDeal, ""))

	if chat.lastText() != msgZeroHotelList {
		t.Fatalf("последнее сообщение %q", chat.lastText())
	}
}

func TestEmptyHotelsResetsDialog(t *testing.T) {
	api := &fakeAPI{regions: testRegions()}
	engine, chat, sessions := testEngine(api, newFakeRepo())
	ctx := context.Background()

	engine.HandleMessage(ctx, command("fillform", ""))
	engine.HandleMessage(ctx, message("manchester"))
	engine.HandleMessage(ctx, message("1"))
	engine.HandleMessage(ctx, message("02/02/2023 05/02/2023"))
	engine.HandleMessage(ctx, message("2"))
	engine.HandleMessage(ctx, message("0"))

	if sessions.Form(42).State != models.StateIdle {
		t.Fatalf("состояние %q, ожидалось возвращение в исходное", sessions.Form(42).State)
	}
	if chat.lastText() != msgNoFindHotels {
		t.Fatalf("последнее сообщение %q", chat.lastText())
	}
}

func TestEmptyRegionsKeepsState(t *testing.T) {
	engine, chat, sessions := testEngine(&fakeAPI{}, newFakeRepo())
	ctx := context.Background()

	engine.HandleMessage(ctx, command("fillform", ""))
	engine.HandleMessage(ctx, message("atlantida"))

	if sessions.Form(42).State != models.StateAwaitingRegionName {
		t.Fatalf("состояние %q", sessions.Form(42).State)
	}
	if chat.lastText() != msgNoFindRegion {
		t.Fatalf("последнее сообщение %q", chat.lastText())
	}
}

func TestCustomisingUpdatesConfig(t *testing.T) {
	repo := newFakeRepo()
	engine, _, sessions := testEngine(&fakeAPI{}, repo)
	ctx := context.Background()

	engine.HandleMessage(ctx, command("customising", ""))
	if sessions.Form(42).State != models.StateAwaitingConfig {
		t.Fatalf("состояние %q", sessions.Form(42).State)
	}

	engine.HandleMessage(ctx, message("4, 9, 5"))

	form := sessions.Form(42)
	if form.State != models.StateIdle {
		t.Fatalf("состояние после настройки %q", form.State)
	}
	cfg := sessions.Config(ctx, 42)
	if cfg.ImageLimit != 4 || cfg.ResultLimit != 9 || cfg.HistoryLimit != 5 {
		t.Fatalf("лимиты %d/%d/%d", cfg.ImageLimit, cfg.ResultLimit, cfg.HistoryLimit)
	}
	stored := repo.configs[42]
	if stored.ImageLimit != 4 || stored.ResultLimit != 9 || stored.HistoryLimit != 5 {
		t.Fatalf("в хранилище лимиты %d/%d/%d", stored.ImageLimit, stored.ResultLimit, stored.HistoryLimit)
	}
}

func TestShowdataWithoutSearch(t *testing.T) {
	engine, chat, _ := testEngine(&fakeAPI{}, newFakeRepo())

	engine.HandleMessage(context.Background(), command("showdata", ""))

	if chat.lastText() != msgWrongShowdata {
		t.Fatalf("последнее сообщение %q", chat.lastText())
	}
}

func TestHistoryBlockedDuringSearch(t *testing.T) {
	engine, chat, sessions := testEngine(&fakeAPI{}, newFakeRepo())
	sessions.Form(42).State = models.StateAwaitingDates

	engine.HandleMessage(context.Background(), command("history", ""))

	if chat.lastText() != msgWrongHistory {
		t.Fatalf("последнее сообщение %q", chat.lastText())
	}
}

func TestPhotoCounts(t *testing.T) {
	cases := []struct {
		n    int
		want []int
	}{
		{0, nil},
		{1, []int{1}},
		{3, []int{3}},
		{4, []int{4, 2, 1}},
		{7, []int{7, 4, 2}},
		{10, []int{10, 5, 4}},
	}
	for _, tc := range cases {
		got := photoCounts(tc.n)
		if len(got) != len(tc.want) {
			t.Fatalf("photoCounts(%d) = %v, ожидалось %v", tc.n, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("photoCounts(%d) = %v, ожидалось %v", tc.n, got, tc.want)
			}
		}
	}
}

func TestNightsSameDay(t *testing.T) {
	form := models.SearchForm{
		CheckIn:  time.Date(2023, 2, 2, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2023, 2, 2, 0, 0, 0, 0, time.UTC),
	}
	if form.Nights() != 1 {
		t.Fatalf("ночей %d, ожидалась 1", form.Nights())
	}
}
