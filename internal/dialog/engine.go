// Package dialog реализует машину состояний заполнения запроса поиска
// отеля: от названия региона до выбора конкретного отеля, с настройками
// и историей. Сообщения одного пользователя обрабатываются строго
// последовательно под пользовательским мьютексом.
package dialog

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"hotelsLookerBot/internal/domain/models"
	"hotelsLookerBot/internal/hotelsapi"
	"hotelsLookerBot/internal/session"
	"hotelsLookerBot/internal/validate"
	"hotelsLookerBot/pkg/logger/sl"
)

// Incoming одно входящее сообщение или нажатие кнопки.
// Command без ведущего слеша, Args остаток строки после команды.
type Incoming struct {
	UserID      int64
	ChatID      int64
	MessageID   int
	DisplayName string
	Text        string
	Command     string
	Args        string
	Callback    bool
}

// Menu описывает клавиатуру, прикрепляемую к сообщению
type Menu struct {
	Sort        bool
	PhotoCounts []int
}

// Media одна фотография в медиагруппе
type Media struct {
	URL     string
	Caption string
}

// ChatTransport отправка сообщений в чат. Ошибки редактирования и
// удаления не критичны для диалога и обрабатываются вызывающим кодом.
type ChatTransport interface {
	SendText(ctx context.Context, chatID int64, text string, menu *Menu) (models.MessageRef, error)
	EditText(ctx context.Context, ref models.MessageRef, text string, menu *Menu) error
	DeleteMessage(ctx context.Context, ref models.MessageRef) error
	SendPhoto(ctx context.Context, chatID int64, url string, caption string) error
	SendMediaGroup(ctx context.Context, chatID int64, media []Media) error
}

// SearchAPI три каскадных запроса к travel-API
type SearchAPI interface {
	SearchRegions(ctx context.Context, freeText string) ([]models.Region, error)
	SearchHotels(ctx context.Context, p hotelsapi.OfferParams) ([]models.Hotel, error)
	FetchHotelSummary(ctx context.Context, hotelID string) (*models.HotelSummary, error)
}

type Engine struct {
	log      *slog.Logger
	api      SearchAPI
	sessions *session.Store
	chat     ChatTransport
}

func New(log *slog.Logger, api SearchAPI, sessions *session.Store, chat ChatTransport) *Engine {
	return &Engine{
		log:      log,
		api:      api,
		sessions: sessions,
		chat:     chat,
	}
}

// HandleMessage обрабатывает одно входящее сообщение пользователя.
// Пользовательский мьютекс гарантирует не больше одного перехода
// диалога за раз, сообщения разных пользователей идут параллельно.
func (e *Engine) HandleMessage(ctx context.Context, in Incoming) {
	const op = "dialog.HandleMessage"

	log := e.log.With(slog.String("op", op), slog.Int64("user_id", in.UserID))

	lock := e.sessions.UserLock(in.UserID)
	lock.Lock()
	defer lock.Unlock()

	form := e.sessions.Form(in.UserID)

	if in.Command != "" {
		e.handleCommand(ctx, log, in, form)
		return
	}
	e.handleText(ctx, log, in, form)
}

func (e *Engine) handleCommand(ctx context.Context, log *slog.Logger, in Incoming, form *models.SearchForm) {
	switch in.Command {
	case "start":
		e.clearWarning(ctx, form)
		e.clearMenu(ctx, form)
		form.Clear()
		e.sessions.Config(ctx, in.UserID)
		e.send(ctx, log, in.ChatID, msgStart+msgHelp, nil)
		e.send(ctx, log, in.ChatID, msgHelpInfo, nil)

	case "help":
		e.send(ctx, log, in.ChatID, msgHelp, nil)

	case "fillform":
		e.clearWarning(ctx, form)
		form.Clear()
		form.State = models.StateAwaitingRegionName
		e.replaceMenu(ctx, log, form, in.ChatID, msgFillform+msgCancelHint, nil)

	case "cancel":
		if form.State == models.StateIdle {
			e.send(ctx, log, in.ChatID, msgNotInCancel, nil)
			return
		}
		e.clearWarning(ctx, form)
		e.clearMenu(ctx, form)
		form.Clear()
		e.send(ctx, log, in.ChatID, msgInfoCancel, nil)

	case "config":
		cfg := e.sessions.Config(ctx, in.UserID)
		e.send(ctx, log, in.ChatID, renderConfig(cfg), nil)

	case "customising":
		e.clearWarning(ctx, form)
		form.Clear()
		form.State = models.StateAwaitingConfig
		e.replaceMenu(ctx, log, form, in.ChatID,
			msgCustomising+msgInfoConstant()+msgCancelHint, nil)

	case "showdata":
		e.showLastQuery(ctx, log, in)

	case "showimage":
		e.showImages(ctx, log, in)

	case "history":
		if form.State != models.StateIdle {
			e.send(ctx, log, in.ChatID, msgWrongHistory, nil)
			return
		}
		e.showHistory(ctx, log, in)

	case models.SortLowPrice, models.SortHighPrice, models.SortBestDeal:
		e.handleSort(ctx, log, in, form, in.Command)

	default:
		e.send(ctx, log, in.ChatID, msgOtherAnswer, nil)
	}
}

func (e *Engine) handleText(ctx context.Context, log *slog.Logger, in Incoming, form *models.SearchForm) {
	switch form.State {
	case models.StateAwaitingRegionName:
		e.stepRegionName(ctx, log, in, form)
	case models.StateAwaitingRegionIndex:
		e.stepRegionIndex(ctx, log, in, form)
	case models.StateAwaitingDates:
		e.stepDates(ctx, log, in, form)
	case models.StateAwaitingAdults:
		e.stepAdults(ctx, log, in, form)
	case models.StateAwaitingChildren:
		e.stepChildren(ctx, log, in, form)
	case models.StateAwaitingHotelIndex:
		e.stepHotelIndex(ctx, log, in, form)
	case models.StateAwaitingConfig:
		e.stepConfig(ctx, log, in, form)
	default:
		e.send(ctx, log, in.ChatID, msgOtherAnswer, nil)
	}
}

// stepRegionName ввод названия региона и первый запрос к travel-API.
// Пустая выдача не сбрасывает диалог: пользователь пробует другое название.
func (e *Engine) stepRegionName(ctx context.Context, log *slog.Logger, in Incoming, form *models.SearchForm) {
	name, ok := validate.RegionName(in.Text)
	if !ok {
		sample := []rune(strings.TrimSpace(in.Text))
		if len(sample) > 10 {
			sample = sample[:10]
		}
		e.warn(ctx, log, form, in.ChatID,
			fmt.Sprintf("'%s' %s%s", string(sample), msgWrongRegion, msgCancelHint))
		return
	}

	form.RegionName = name
	e.clearWarning(ctx, form)
	e.send(ctx, log, in.ChatID, msgLookRegion+" <b>"+name+"</b>\n"+msgWait, nil)

	regions, err := e.api.SearchRegions(ctx, name)
	if err != nil {
		log.Error("поиск регионов не удался", sl.Err(err))
	}
	if len(regions) == 0 {
		e.send(ctx, log, in.ChatID, msgNoFindRegion, nil)
		return
	}

	form.RegionCandidates = regions
	form.State = models.StateAwaitingRegionIndex
	e.replaceMenu(ctx, log, form, in.ChatID,
		msgChoiceRegion+makePlacesMenu(regions)+msgCancelHint, nil)
}

func (e *Engine) stepRegionIndex(ctx context.Context, log *slog.Logger, in Incoming, form *models.SearchForm) {
	idx, ok := validate.Index(in.Text, len(form.RegionCandidates))
	if !ok {
		e.warn(ctx, log, form, in.ChatID,
			fmt.Sprintf("%s %d.%s", msgWrongRegionIndex, len(form.RegionCandidates), msgCancelHint))
		return
	}

	region := form.RegionCandidates[idx-1]
	form.Region = &region
	form.RegionCandidates = nil
	e.clearWarning(ctx, form)
	e.clearMenu(ctx, form)

	e.send(ctx, log, in.ChatID,
		fmt.Sprintf("%s<b>%s</b>, %s, %s", msgFinalRegion,
			region.Name, models.RegionTypeNames[region.Type], region.CountryName), nil)

	form.State = models.StateAwaitingDates
	e.replaceMenu(ctx, log, form, in.ChatID,
		msgInputDates+sampleDates(time.Now())+msgCancelHint, nil)
}

func (e *Engine) stepDates(ctx context.Context, log *slog.Logger, in Incoming, form *models.SearchForm) {
	checkIn, checkOut, ok := validate.DatePair(in.Text)
	if !ok {
		e.warn(ctx, log, form, in.ChatID, msgWrongDates()+msgCancelHint)
		return
	}

	form.CheckIn = checkIn
	form.CheckOut = checkOut
	e.clearWarning(ctx, form)

	e.send(ctx, log, in.ChatID,
		fmt.Sprintf("%s%s <b>%s</b>\n%s <b>%s</b>\nночей: <b>%d</b>",
			msgResultDates,
			msgCheckIn, checkIn.Format(dateLayout),
			msgCheckOut, checkOut.Format(dateLayout),
			form.Nights()), nil)

	form.State = models.StateAwaitingAdults
	e.replaceMenu(ctx, log, form, in.ChatID, msgInputAdults+msgCancelHint, nil)
}

func (e *Engine) stepAdults(ctx context.Context, log *slog.Logger, in Incoming, form *models.SearchForm) {
	adults, ok := validate.Adults(in.Text)
	if !ok {
		e.warn(ctx, log, form, in.ChatID, msgWrongAdults()+msgCancelHint)
		return
	}

	form.Adults = adults
	e.clearWarning(ctx, form)
	e.send(ctx, log, in.ChatID,
		fmt.Sprintf("%s <b>%d</b>", msgResultAdults, adults), nil)

	form.State = models.StateAwaitingChildren
	e.replaceMenu(ctx, log, form, in.ChatID, msgInputChildren()+msgCancelHint, nil)
}

// stepChildren последний слот формы. После него выполняется второй
// запрос к travel-API; пустая выдача завершает диалог и возвращает
// пользователя в исходное состояние.
func (e *Engine) stepChildren(ctx context.Context, log *slog.Logger, in Incoming, form *models.SearchForm) {
	ok, ages := validate.ChildrenAges(in.Text)
	if !ok {
		text := msgInputChildren() + msgWrongChildren
		if len(ages) > 0 {
			text = msgBadListChildren + "<b>" + joinInts(ages) + "</b>\n" + text
		}
		e.warn(ctx, log, form, in.ChatID, text+msgCancelHint)
		return
	}

	form.Children = ages
	e.clearWarning(ctx, form)
	e.clearMenu(ctx, form)

	if info := childrenInfo(ages); info != "" {
		e.send(ctx, log, in.ChatID, info, nil)
	}
	e.send(ctx, log, in.ChatID,
		msgLookHotels+"<b>"+form.Region.Name+"</b>\n"+msgWait, nil)

	cfg := e.sessions.Config(ctx, in.UserID)
	hotels, err := e.api.SearchHotels(ctx, hotelsapi.OfferParams{
		RegionID:    form.Region.ID,
		CheckIn:     form.CheckIn,
		CheckOut:    form.CheckOut,
		Adults:      form.Adults,
		Children:    form.Children,
		ResultLimit: cfg.ResultLimit,
		SortMethod:  models.SortLowPrice,
	})
	if err != nil {
		log.Error("поиск отелей не удался", sl.Err(err))
	}
	if len(hotels) == 0 {
		e.send(ctx, log, in.ChatID, msgNoFindHotels, nil)
		form.Clear()
		return
	}

	form.HotelCandidates = hotels
	form.SortMethod = models.SortLowPrice
	form.State = models.StateAwaitingHotelIndex
	e.replaceMenu(ctx, log, form, in.ChatID, hotelsMenuText(form), &Menu{Sort: true})
}

// stepHotelIndex выбор отеля, третий запрос к travel-API и фиксация
// результата в истории. Недоступная сводка или ошибка записи истории
// не мешают показать результат.
func (e *Engine) stepHotelIndex(ctx context.Context, log *slog.Logger, in Incoming, form *models.SearchForm) {
	idx, ok := validate.Index(in.Text, len(form.HotelCandidates))
	if !ok {
		e.warn(ctx, log, form, in.ChatID,
			fmt.Sprintf("%s %d.%s", msgWrongHotelIndex, len(form.HotelCandidates), msgCancelHint))
		return
	}

	hotel := form.HotelCandidates[idx-1]
	e.clearWarning(ctx, form)
	e.clearMenu(ctx, form)
	e.send(ctx, log, in.ChatID, msgFinalHotel+"<b>"+hotel.Name+"</b>\n"+msgWait, nil)

	summary, err := e.api.FetchHotelSummary(ctx, hotel.ID)
	if err != nil {
		log.Error("сводка по отелю не получена", sl.Err(err), slog.String("hotel_id", hotel.ID))
		summary = nil
	}

	snap := &models.CompletedSearch{
		Region:   *form.Region,
		CheckIn:  form.CheckIn,
		CheckOut: form.CheckOut,
		Adults:   form.Adults,
		Children: form.Children,
		Hotel:    hotel,
		Summary:  summary,
	}
	if err := e.sessions.CommitHistory(ctx, in.UserID, in.DisplayName, in.ChatID, snap); err != nil {
		log.Error("история не записана", sl.Err(err))
	}

	form.Clear()
	e.showLastQuery(ctx, log, in)
}

func (e *Engine) stepConfig(ctx context.Context, log *slog.Logger, in Incoming, form *models.SearchForm) {
	imageLimit, resultLimit, historyLimit, ok := validate.ConfigTriple(in.Text)
	if !ok {
		e.warn(ctx, log, form, in.ChatID, msgWrongConstant+msgInfoConstant()+msgCancelHint)
		return
	}

	e.clearWarning(ctx, form)
	e.clearMenu(ctx, form)
	cfg := e.sessions.UpdateConfig(ctx, in.UserID, imageLimit, resultLimit, historyLimit)
	form.Clear()
	e.send(ctx, log, in.ChatID, renderConfig(cfg), nil)
}

// handleSort пересортировка текущего списка отелей на месте.
// Состояние диалога не меняется, меню редактируется без отправки нового.
func (e *Engine) handleSort(ctx context.Context, log *slog.Logger, in Incoming, form *models.SearchForm, method string) {
	if form.State != models.StateAwaitingHotelIndex || len(form.HotelCandidates) == 0 {
		e.send(ctx, log, in.ChatID, msgZeroHotelList, nil)
		return
	}
	if form.SortMethod == method {
		return
	}

	hotelsapi.SortHotels(form.HotelCandidates, method)
	form.SortMethod = method

	text := hotelsMenuText(form)
	if form.MenuMsg != nil {
		if err := e.chat.EditText(ctx, *form.MenuMsg, text, &Menu{Sort: true}); err == nil {
			return
		}
		e.clearMenu(ctx, form)
	}
	form.MenuMsg = e.send(ctx, log, in.ChatID, text, &Menu{Sort: true})
}

// showLastQuery карточка последнего завершенного поиска: текст, карта,
// меню фотографий
func (e *Engine) showLastQuery(ctx context.Context, log *slog.Logger, in Incoming) {
	cfg := e.sessions.Config(ctx, in.UserID)
	if cfg.LastQuery == nil {
		e.send(ctx, log, in.ChatID, msgWrongShowdata, nil)
		return
	}
	q := cfg.LastQuery

	e.send(ctx, log, in.ChatID, renderLastQuery(q), nil)

	if q.Summary != nil && q.Summary.MapImageURL != "" {
		if err := e.chat.SendPhoto(ctx, in.ChatID, q.Summary.MapImageURL, q.Hotel.Name); err != nil {
			log.Warn("карта не отправлена", sl.Err(err))
		}
	}

	if q.Summary != nil && len(q.Summary.ImageURLs) > 0 {
		available := len(q.Summary.ImageURLs)
		if available > cfg.ImageLimit {
			available = cfg.ImageLimit
		}
		e.send(ctx, log, in.ChatID,
			msgImageQuantity(available)+"\n"+msgShowImageCommand+"\n"+msgPushButton,
			&Menu{PhotoCounts: photoCounts(available)})
	}

	e.send(ctx, log, in.ChatID, msgFinish, nil)
}

// showImages отправка фотографий отеля медиагруппой. Количество
// ограничено лимитом пользователя, аргумент команды может его уменьшить.
func (e *Engine) showImages(ctx context.Context, log *slog.Logger, in Incoming) {
	cfg := e.sessions.Config(ctx, in.UserID)
	q := cfg.LastQuery
	if q == nil || q.Summary == nil || len(q.Summary.ImageURLs) == 0 {
		e.send(ctx, log, in.ChatID, msgWrongShowImage, nil)
		return
	}

	count := len(q.Summary.ImageURLs)
	if count > cfg.ImageLimit {
		count = cfg.ImageLimit
	}
	if requested, ok := validate.Index(in.Args, count); ok {
		count = requested
	}

	media := make([]Media, 0, count)
	for i, url := range q.Summary.ImageURLs[:count] {
		media = append(media, Media{
			URL:     url,
			Caption: fmt.Sprintf("%d. %s", i+1, q.Hotel.Name),
		})
	}
	if err := e.chat.SendMediaGroup(ctx, in.ChatID, media); err != nil {
		log.Error("фотографии не отправлены", sl.Err(err))
		e.send(ctx, log, in.ChatID, msgWrongShowImage, nil)
	}
}

func (e *Engine) showHistory(ctx context.Context, log *slog.Logger, in Incoming) {
	cfg := e.sessions.Config(ctx, in.UserID)
	records, err := e.sessions.History(ctx, in.UserID, cfg.HistoryLimit)
	if err != nil {
		log.Error("история не прочитана", sl.Err(err))
	}
	if len(records) == 0 {
		e.send(ctx, log, in.ChatID, msgHistoryEmpty, nil)
		return
	}
	e.send(ctx, log, in.ChatID, msgHistoryHeader+renderHistory(records), nil)
}

// send отправляет сообщение и возвращает ссылку на него,
// nil если отправка не удалась
func (e *Engine) send(ctx context.Context, log *slog.Logger, chatID int64, text string, menu *Menu) *models.MessageRef {
	ref, err := e.chat.SendText(ctx, chatID, text, menu)
	if err != nil {
		log.Error("сообщение не отправлено", sl.Err(err))
		return nil
	}
	return &ref
}

// warn показывает предупреждение об ошибке ввода. Предыдущее
// предупреждение удаляется, повторное получает пометку.
func (e *Engine) warn(ctx context.Context, log *slog.Logger, form *models.SearchForm, chatID int64, text string) {
	if form.WarningMsg != nil {
		_ = e.chat.DeleteMessage(ctx, *form.WarningMsg)
		form.WarningMsg = nil
		text = msgSwearWord + text
	}
	form.WarningMsg = e.send(ctx, log, chatID, text, nil)
}

func (e *Engine) clearWarning(ctx context.Context, form *models.SearchForm) {
	if form.WarningMsg != nil {
		_ = e.chat.DeleteMessage(ctx, *form.WarningMsg)
		form.WarningMsg = nil
	}
}

func (e *Engine) clearMenu(ctx context.Context, form *models.SearchForm) {
	if form.MenuMsg != nil {
		_ = e.chat.DeleteMessage(ctx, *form.MenuMsg)
		form.MenuMsg = nil
	}
}

// replaceMenu заменяет сообщение-приглашение: старое удаляется,
// новое запоминается в форме
func (e *Engine) replaceMenu(ctx context.Context, log *slog.Logger, form *models.SearchForm, chatID int64, text string, menu *Menu) {
	e.clearMenu(ctx, form)
	form.MenuMsg = e.send(ctx, log, chatID, text, menu)
}

func hotelsMenuText(form *models.SearchForm) string {
	return msgChoiceHotels + makeHotelsMenu(form.HotelCandidates) +
		"\n\n" + msgSortHotels + " <b>" + form.SortMethod + "</b>" + msgCancelHint
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
