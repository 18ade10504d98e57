package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"busbilet-cli/booking"
	"busbilet-cli/model"
	"busbilet-cli/seatmap"
	"busbilet-cli/service"
	"busbilet-cli/store"
)

type appState int

const (
	stateLoadingStations appState = iota
	stateSelectFrom
	stateSelectTo
	stateSelectDate
	stateLoadingJourneys
	stateSelectJourney
	stateLoadingSeats
	stateShowSeatMap
	stateGenderPrompt
	statePassengerForm
	stateCheckingOut
	stateResult
	stateTicketLookup
	stateLoadingTicket
	stateShowTicket
	stateError
)

const (
	loadFailedText      = "Could not load data."
	operationFailedText = "An error occurred during the operation."
	dayCount            = 7
)

// Options wires the UI to its collaborators. A nil Client talks to the
// default base URL; a nil Logger discards.
type Options struct {
	Client   *service.Client
	Logger   *slog.Logger
	UseCache bool
	Now      func() time.Time
}

type appModel struct {
	client   *service.Client
	logger   *slog.Logger
	useCache bool
	now      func() time.Time

	state     appState
	lastState appState
	errText   string

	width  int
	height int

	session   booking.Session
	stations  []model.Station
	from      model.Station
	to        model.Station
	journey   model.Journey
	listed    time.Time
	recent    store.RecentRoute
	hasRecent bool

	fromList    list.Model
	toList      list.Model
	dateList    list.Model
	journeyList list.Model

	seats           *seatmap.Map
	cursorRow       int
	cursorCol       int
	pendingSeat     int
	showSeatNumbers bool
	notice          string

	form   passengerForm
	result model.TicketResult

	pnrInput        textinput.Model
	pnrReturnState  appState
	ticket          model.TicketRecord
	ticketPNR       string
	dateReturnState appState

	spinner spinner.Model

	errorSuggestNextDay bool
}

type errMsg struct {
	text           string
	returnState    appState
	suggestNextDay bool
}

type stationsMsg struct {
	stations []model.Station
	cached   bool
	err      error
}

type journeysMsg struct {
	search   uint64
	journeys []model.Journey
	err      error
}

type seatsMsg struct {
	ticket booking.Ticket
	seats  []model.Seat
	err    error
}

type checkoutMsg struct {
	result model.TicketResult
	err    error
}

type ticketMsg struct {
	pnr    string
	record model.TicketRecord
	err    error
}

func New(opts Options) tea.Model {
	client := opts.Client
	if client == nil {
		client = service.NewClient(nil, service.Options{})
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := appModel{
		client:   client,
		logger:   logger,
		useCache: opts.UseCache,
		now:      now,
		state:    stateLoadingStations,
		session:  booking.New(now()),
	}

	m.fromList = newList("From")
	m.toList = newList("To")
	m.dateList = newList("Travel Date")
	m.dateList.SetFilteringEnabled(false)
	m.journeyList = newList("Journeys")
	m.journeyList.SetFilteringEnabled(false)

	m.showSeatNumbers = true
	m.form = newPassengerForm()
	m.pnrInput = newPNRInput()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.fetchStationsCmd(), m.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if m.isTextInputState() {
			return m.updateTextInput(msg)
		}
		if m.handleFilterInput(msg) {
			return m, nil
		}
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}
		m = next

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isLoadingState() {
			return m, cmd
		}
		return m, nil

	case errMsg:
		m.errText = msg.text
		m.lastState = msg.returnState
		m.errorSuggestNextDay = msg.suggestNextDay
		m.state = stateError
		return m, nil

	case stationsMsg:
		if msg.err != nil {
			return m, m.failCmd("load stations", msg.err, loadFailedText, stateSelectFrom)
		}
		m.stations = msg.stations
		m.logger.Debug("stations loaded", "count", len(msg.stations), "cached", msg.cached)
		m.recent, m.hasRecent = store.LastRoute()
		m.fromList.SetItems(buildStationItems(m.stations, 0, m.recentFromID()))
		m.state = stateSelectFrom
		return m, nil

	case journeysMsg:
		if m.state != stateLoadingJourneys || !m.session.AcceptSearch(msg.search) {
			m.logger.Debug("dropping stale journey search", "search", msg.search)
			return m, nil
		}
		if msg.err != nil {
			return m, m.failCmd("search journeys", msg.err, loadFailedText, stateSelectDate)
		}
		if len(msg.journeys) == 0 {
			return m, errWithOptionsCmd(
				fmt.Sprintf("No journeys found from %s to %s on %s.", m.from.Label(), m.to.Label(), m.session.DateKey()),
				stateSelectDate,
				true,
			)
		}
		m.journeyList.Title = fmt.Sprintf("Journeys • %s → %s", m.from.Label(), m.to.Label())
		m.journeyList.SetItems(buildJourneyItems(msg.journeys))
		m.journeyList.Select(0)
		m.listed = m.session.Date
		m.state = stateSelectJourney
		return m, nil

	case seatsMsg:
		if m.state != stateLoadingSeats || !m.session.Accept(msg.ticket) {
			m.logger.Debug("dropping stale seat map", "journey_id", msg.ticket.JourneyID, "generation", msg.ticket.Generation)
			return m, nil
		}
		if msg.err != nil {
			m.session.Close()
			return m, m.failCmd("load seats", msg.err, loadFailedText, stateSelectJourney)
		}
		m.seats = seatmap.New(msg.ticket.JourneyID, msg.seats)
		m.placeCursor()
		m.notice = ""
		m.state = stateShowSeatMap
		return m, nil

	case checkoutMsg:
		if msg.err != nil {
			return m, m.failCmd("checkout", msg.err, operationFailedText, statePassengerForm)
		}
		m.result = msg.result
		if msg.result.IsSuccess {
			m.logger.Info("ticket purchased", "journey_id", m.seats.JourneyID(), "seats", m.seats.SeatIDs(), "pnr", msg.result.PnrCode)
			m.seats.Reset()
			m.form = newPassengerForm()
		} else {
			m.logger.Info("purchase refused", "journey_id", m.seats.JourneyID(), "message", msg.result.Message)
		}
		m.state = stateResult
		return m, nil

	case ticketMsg:
		if msg.err != nil {
			if service.IsNotFound(msg.err) {
				return m, errWithOptionsCmd(fmt.Sprintf("No ticket found for PNR %s.", msg.pnr), stateTicketLookup, false)
			}
			return m, m.failCmd("ticket lookup", msg.err, loadFailedText, stateTicketLookup)
		}
		m.ticket = msg.record
		m.ticketPNR = msg.pnr
		m.state = stateShowTicket
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateSelectFrom:
		m.fromList, cmd = m.fromList.Update(msg)
	case stateSelectTo:
		m.toList, cmd = m.toList.Update(msg)
	case stateSelectDate:
		m.dateList, cmd = m.dateList.Update(msg)
	case stateSelectJourney:
		m.journeyList, cmd = m.journeyList.Update(msg)
	case statePassengerForm:
		cmd = m.form.update(msg)
	case stateTicketLookup:
		m.pnrInput, cmd = m.pnrInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateLoadingStations, stateLoadingJourneys, stateLoadingSeats, stateCheckingOut, stateLoadingTicket:
		return header + "\n\n" + m.loadingView()
	case stateSelectFrom:
		return header + "\n\n" + m.fromList.View()
	case stateSelectTo:
		return header + "\n\n" + m.toList.View()
	case stateSelectDate:
		return header + "\n\n" + m.dateList.View()
	case stateSelectJourney:
		return header + "\n\n" + m.journeyList.View()
	case stateShowSeatMap:
		return header + "\n\n" + m.renderSeatMap()
	case stateGenderPrompt:
		return header + "\n\n" + m.renderSeatMap() + "\n\n" + m.genderPromptView()
	case statePassengerForm:
		return header + "\n\n" + m.form.view(m.seats, m.journey.Currency)
	case stateResult:
		return header + "\n\n" + m.resultView()
	case stateTicketLookup:
		return header + "\n\n" + m.ticketLookupView()
	case stateShowTicket:
		return header + "\n\n" + m.ticketView()
	case stateError:
		if m.errorSuggestNextDay {
			return header + "\n\n" + m.errorRecoveryView()
		}
		return header + "\n\n" + errorStyle.Render(m.errText) + "\n\n" + hint("Press esc to go back or ctrl+c to quit.")
	default:
		return header
	}
}

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
)

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("busbilet")
	sub := []string{}
	if m.from.Id != 0 {
		sub = append(sub, fmt.Sprintf("From: %s", m.from.Label()))
	}
	if m.to.Id != 0 && m.state != stateSelectTo {
		sub = append(sub, fmt.Sprintf("To: %s", m.to.Label()))
	}
	if m.state >= stateSelectDate && m.state <= stateResult {
		sub = append(sub, fmt.Sprintf("Date: %s", m.session.DateKey()))
	}
	if m.state >= stateLoadingSeats && m.state <= stateResult && m.journey.Id != 0 {
		sub = append(sub, fmt.Sprintf("Departure: %s %s", m.journey.Date.Format("15:04"), m.journey.Provider))
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}
	hints := "ctrl+c quit • esc back • type to filter • ctrl+t ticket lookup"
	switch m.state {
	case stateSelectDate:
		hints = "ctrl+c quit • esc back • enter select date"
	case stateSelectJourney:
		hints = "ctrl+c quit • esc back • enter seat map • s swap route • ctrl+d pick date • ctrl+t ticket lookup"
	case stateShowSeatMap:
		hints = "ctrl+c quit • esc back • arrows/hjkl move • enter/space select • b buy • n toggle numbers"
	case stateGenderPrompt:
		hints = "m male • f female • esc cancel"
	case statePassengerForm:
		hints = "ctrl+c quit • esc back • tab next field • enter submit"
	case stateTicketLookup:
		hints = "ctrl+c quit • esc back • enter look up"
	case stateResult:
		hints = "ctrl+c quit • esc back • enter continue • ctrl+t ticket lookup"
	case stateShowTicket, stateError:
		hints = "ctrl+c quit • esc back"
	}
	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint(fmt.Sprintf("Filter: %s", filter))
		}
	}
	return title + meta + filterLine + "\n" + hint(hints)
}

func (m appModel) errorRecoveryView() string {
	nextDate := m.session.Date.AddDate(0, 0, 1)
	headerChip := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("63")).
		Padding(0, 2)
	actionChip := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("63")).
		Width(8).
		Align(lipgloss.Center).
		Padding(0, 1)

	enterAction := lipgloss.JoinHorizontal(
		lipgloss.Top,
		actionChip.Render("ENTER"),
		"  ",
		lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Try %s (next day)", nextDate.Format(time.DateOnly))),
	)
	dateAction := lipgloss.JoinHorizontal(
		lipgloss.Top,
		actionChip.Render("CTRL+D"),
		"  ",
		"Pick another date",
	)

	content := strings.Join([]string{
		headerChip.Render("No Journeys"),
		"",
		warningStyle.Render(m.errText),
		"",
		enterAction,
		"",
		dateAction,
		"",
		hint("ESC back • CTRL+C quit"),
	}, "\n")

	panelStyle := lipgloss.NewStyle().
		Padding(1, 3).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("63")).
		MarginTop(1)
	if m.width > 56 {
		panelStyle = panelStyle.Width(min(m.width-8, 84))
	}
	panel := panelStyle.Render(content)
	if m.width > 0 {
		panel = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, panel)
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(panel)
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true
	case "q":
		if m.state != stateGenderPrompt {
			return m, tea.Quit, true
		}
	case "esc":
		if listPtr := m.activeList(); listPtr != nil {
			if listPtr.SettingFilter() || listPtr.IsFiltered() {
				listPtr.ResetFilter()
				return m, nil, true
			}
		}
		next, cmd := m.goBack()
		return next, cmd, true
	case "ctrl+t":
		switch m.state {
		case stateGenderPrompt, stateCheckingOut, stateLoadingStations:
		default:
			return m.openTicketLookup()
		}
	case "ctrl+d":
		if m.state == stateSelectJourney {
			m.openDatePicker(stateSelectJourney)
			return m, nil, true
		}
		if m.state == stateError && m.errorSuggestNextDay {
			m.openDatePicker(stateLoadingJourneys)
			return m, nil, true
		}
	}

	switch m.state {
	case stateShowSeatMap:
		return m.handleSeatMapKey(msg)
	case stateGenderPrompt:
		return m.handleGenderKey(msg)
	case stateSelectJourney:
		if msg.String() == "s" {
			return m.swapRoute()
		}
	}

	if msg.Type != tea.KeyEnter {
		return m, nil, false
	}
	if m.state == stateError && m.errorSuggestNextDay {
		m.session.SetDate(m.session.Date.AddDate(0, 0, 1))
		m.errorSuggestNextDay = false
		return m.searchJourneys()
	}
	switch m.state {
	case stateSelectFrom:
		item, ok := m.fromList.SelectedItem().(stationItem)
		if !ok {
			return m, nil, true
		}
		m.from = item.station
		m.toList.ResetFilter()
		m.toList.SetItems(buildStationItems(m.stations, m.from.Id, m.recentToID(m.from.Id)))
		m.toList.Select(0)
		m.state = stateSelectTo
		return m, nil, true
	case stateSelectTo:
		item, ok := m.toList.SelectedItem().(stationItem)
		if !ok {
			return m, nil, true
		}
		if err := m.session.SetRoute(m.from.Id, item.station.Id); err != nil {
			return m, errWithOptionsCmd(err.Error(), stateSelectTo, false), true
		}
		m.to = item.station
		m.rememberRoute()
		m.openDatePicker(stateLoadingJourneys)
		return m, nil, true
	case stateSelectDate:
		item, ok := m.dateList.SelectedItem().(dateItem)
		if !ok {
			return m, nil, true
		}
		m.session.SetDate(item.date)
		return m.searchJourneys()
	case stateSelectJourney:
		item, ok := m.journeyList.SelectedItem().(journeyItem)
		if !ok {
			return m, nil, true
		}
		return m.openJourney(item.journey)
	case stateResult:
		if m.result.IsSuccess {
			return m.openJourney(m.journey)
		}
		m.state = stateShowSeatMap
		return m, nil, true
	case stateShowTicket:
		m.state = m.pnrReturnState
		return m, nil, true
	}
	return m, nil, false
}

func (m appModel) searchJourneys() (appModel, tea.Cmd, bool) {
	if !m.session.Ready() {
		return m, errWithOptionsCmd("Pick an origin and a destination first.", stateSelectFrom, false), true
	}
	search := m.session.BeginSearch()
	m.state = stateLoadingJourneys
	return m, tea.Batch(m.fetchJourneysCmd(search, m.session.FromID, m.session.ToID, m.session.Date), m.spinner.Tick), true
}

func (m appModel) swapRoute() (appModel, tea.Cmd, bool) {
	m.session.Swap()
	m.from, m.to = m.to, m.from
	m.rememberRoute()
	return m.searchJourneys()
}

// openJourney starts a seat-map fetch for journey. Any selection from a
// previously opened journey is dropped.
func (m appModel) openJourney(journey model.Journey) (appModel, tea.Cmd, bool) {
	m.journey = journey
	m.seats = nil
	ticket := m.session.Open(journey.Id)
	m.state = stateLoadingSeats
	return m, tea.Batch(m.fetchSeatsCmd(ticket), m.spinner.Tick), true
}

func (m *appModel) closeSeatMap() {
	m.session.Close()
	m.seats = nil
	m.notice = ""
}

func (m appModel) openTicketLookup() (appModel, tea.Cmd, bool) {
	m.pnrReturnState = m.state
	switch m.state {
	case stateTicketLookup, stateShowTicket, stateLoadingTicket:
		m.pnrReturnState = stateSelectFrom
	case stateLoadingJourneys:
		// The search is abandoned; coming back lands on the date picker.
		m.session.CancelSearch()
		m.pnrReturnState = stateSelectDate
	case stateLoadingSeats:
		m.closeSeatMap()
		m.pnrReturnState = stateSelectJourney
	}
	m.pnrInput.SetValue("")
	if m.state == stateResult && m.result.IsSuccess {
		m.pnrInput.SetValue(m.result.PnrCode)
	}
	m.state = stateTicketLookup
	return m, m.pnrInput.Focus(), true
}

func (m appModel) goBack() (appModel, tea.Cmd) {
	switch m.state {
	case stateSelectTo:
		m.state = stateSelectFrom
	case stateSelectDate:
		if m.dateReturnState == stateSelectJourney {
			// The list still holds the results of the last completed search.
			m.session.SetDate(m.listed)
			m.state = stateSelectJourney
		} else {
			m.state = stateSelectTo
		}
	case stateLoadingJourneys:
		m.session.CancelSearch()
		m.state = stateSelectDate
	case stateSelectJourney:
		m.openDatePicker(stateLoadingJourneys)
	case stateLoadingSeats, stateShowSeatMap:
		m.closeSeatMap()
		m.state = stateSelectJourney
	case stateGenderPrompt:
		m.pendingSeat = 0
		m.state = stateShowSeatMap
	case stateResult:
		if m.result.IsSuccess {
			m.closeSeatMap()
			m.state = stateSelectJourney
		} else {
			m.state = stateShowSeatMap
		}
	case stateShowTicket:
		m.state = m.pnrReturnState
	case stateError:
		m.state = m.lastState
		m.errorSuggestNextDay = false
		if m.state == stateSelectFrom && len(m.stations) == 0 {
			m.state = stateLoadingStations
			return m, tea.Batch(m.fetchStationsCmd(), m.spinner.Tick)
		}
		if m.state == stateTicketLookup {
			return m, m.pnrInput.Focus()
		}
	default:
		return m, nil
	}
	return m, nil
}

func (m appModel) isTextInputState() bool {
	return m.state == statePassengerForm || m.state == stateTicketLookup
}

func (m appModel) updateTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.pnrInput.Blur()
		if m.state == stateTicketLookup {
			m.state = m.pnrReturnState
		} else {
			m.state = stateShowSeatMap
		}
		return m, nil
	}
	if m.state == statePassengerForm {
		return m.updatePassengerForm(msg)
	}
	if msg.Type == tea.KeyEnter {
		pnr := strings.ToUpper(strings.TrimSpace(m.pnrInput.Value()))
		if pnr == "" {
			return m, nil
		}
		m.pnrInput.Blur()
		m.state = stateLoadingTicket
		return m, tea.Batch(m.fetchTicketCmd(pnr), m.spinner.Tick)
	}
	var cmd tea.Cmd
	m.pnrInput, cmd = m.pnrInput.Update(msg)
	return m, cmd
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil {
		return false
	}
	if !listPtr.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		m.appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		m.appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		m.popFilter(listPtr)
		return true
	default:
		return false
	}
}

func (m *appModel) appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	current := listPtr.FilterValue()
	listPtr.SetFilterText(current + value)
}

func (m *appModel) popFilter(listPtr *list.Model) {
	value := listPtr.FilterValue()
	if value == "" {
		return
	}
	value = trimLastRune(value)
	if value == "" {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(value)
}

// openDatePicker shows the next days; after is the state the picker
// returns to on esc when a journey list is already open.
func (m *appModel) openDatePicker(after appState) {
	m.dateReturnState = after
	m.errorSuggestNextDay = false
	m.dateList.SetItems(buildDateItems(m.now(), dayCount))
	m.dateList.Select(dateIndex(m.now(), m.session.Date, dayCount))
	m.state = stateSelectDate
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func (m *appModel) activeList() *list.Model {
	switch m.state {
	case stateSelectFrom:
		return &m.fromList
	case stateSelectTo:
		return &m.toList
	case stateSelectDate:
		return &m.dateList
	case stateSelectJourney:
		return &m.journeyList
	default:
		return nil
	}
}

func (m appModel) isLoadingState() bool {
	return m.state == stateLoadingStations ||
		m.state == stateLoadingJourneys ||
		m.state == stateLoadingSeats ||
		m.state == stateCheckingOut ||
		m.state == stateLoadingTicket
}

func (m appModel) loadingView() string {
	title := "Loading"
	switch m.state {
	case stateLoadingStations:
		title = "Loading stations"
	case stateLoadingJourneys:
		title = "Searching journeys"
	case stateLoadingSeats:
		title = "Loading seat map"
	case stateCheckingOut:
		title = "Completing purchase"
	case stateLoadingTicket:
		title = "Looking up ticket"
	}

	return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), title, hint("Contacting the booking service..."))
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := max(m.height-6, 6)
	m.fromList.SetSize(m.width, h)
	m.toList.SetSize(m.width, h)
	m.dateList.SetSize(m.width, h)
	m.journeyList.SetSize(m.width, h)
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

// failCmd logs a transport or service failure and shows text, or the
// service's own message when it sent one.
func (m appModel) failCmd(op string, err error, text string, returnState appState) tea.Cmd {
	attrs := []any{"op", op, "error", err}
	var apiErr *service.APIError
	if errors.As(err, &apiErr) {
		attrs = append(attrs, "endpoint", apiErr.Endpoint, "status", apiErr.StatusCode, "request_id", apiErr.RequestID)
	}
	m.logger.Error("booking api call failed", attrs...)

	if message := service.ServiceMessage(err); message != "" {
		text = message
	}
	return errWithOptionsCmd(text, returnState, false)
}

func errWithOptionsCmd(text string, returnState appState, suggestNextDay bool) tea.Cmd {
	return func() tea.Msg {
		return errMsg{
			text:           text,
			returnState:    returnState,
			suggestNextDay: suggestNextDay,
		}
	}
}

func (m appModel) recentFromID() int {
	if !m.hasRecent {
		return 0
	}
	return m.recent.FromID
}

func (m appModel) recentToID(fromID int) int {
	if !m.hasRecent || m.recent.FromID != fromID {
		return 0
	}
	return m.recent.ToID
}

func (m *appModel) rememberRoute() {
	route := store.RecentRoute{
		FromID:   m.from.Id,
		ToID:     m.to.Id,
		FromName: m.from.Label(),
		ToName:   m.to.Label(),
	}
	if err := store.RememberRoute(route); err != nil {
		m.logger.Warn("could not save recent route", "error", err)
		return
	}
	m.recent, m.hasRecent = route, true
}
