package main

import (
	"fmt"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
)

const windowTitle = "Управление базой данных вулканизации"

const (
	titleSuccess = "Успех"
	titleWarning = "Предупреждение"

	msgSelectTable     = "Пожалуйста, сначала выберите таблицу"
	msgSelectForModify = "Пожалуйста, выберите запись для изменения"
	msgSelectForDelete = "Пожалуйста, выберите запись для удаления"
	msgAdded           = "Запись успешно добавлена!"
	msgModified        = "Запись успешно изменена!"
	msgDeleted         = "Запись успешно удалена!"
	msgUnchanged       = "Изменений нет"
)

const (
	defaultColWidth = 160
	minColWidth     = 40
	rowHeight       = 34
	resizerWidth    = 6
)

var (
	headerColor   = color.NRGBA{R: 2, G: 136, B: 209, A: 60}
	evenRowColor  = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
	oddRowColor   = color.NRGBA{R: 245, G: 245, B: 255, A: 200}
	selectedColor = color.NRGBA{R: 179, G: 229, B: 252, A: 255}
)

// colResizer is a small draggable handle to the right of a header cell.
type colResizer struct {
	widget.BaseWidget
	onDrag func(dx float32)
	rect   *canvas.Rectangle
}

func newColResizer(onDrag func(dx float32)) *colResizer {
	r := &colResizer{onDrag: onDrag}
	r.ExtendBaseWidget(r)
	return r
}

func (r *colResizer) CreateRenderer() fyne.WidgetRenderer {
	if r.rect == nil {
		r.rect = canvas.NewRectangle(color.NRGBA{R: 200, G: 200, B: 200, A: 200})
	}
	return &resizerRenderer{rect: r.rect, objs: []fyne.CanvasObject{r.rect}}
}

func (r *colResizer) Dragged(e *fyne.DragEvent) {
	if r.onDrag != nil {
		r.onDrag(e.Dragged.DX)
	}
}

func (r *colResizer) DragEnd() {}

type resizerRenderer struct {
	rect *canvas.Rectangle
	objs []fyne.CanvasObject
}

func (rr *resizerRenderer) MinSize() fyne.Size           { return fyne.NewSize(resizerWidth, 24) }
func (rr *resizerRenderer) Layout(size fyne.Size)        { rr.rect.Resize(size) }
func (rr *resizerRenderer) Refresh()                     { rr.rect.Refresh() }
func (rr *resizerRenderer) Objects() []fyne.CanvasObject { return rr.objs }
func (rr *resizerRenderer) Destroy()                     {}

// rowOverlay is a transparent cover over a grid cell: left click selects the
// row, right click selects it and opens it for editing.
type rowOverlay struct {
	canvas.Rectangle
	onTap          func()
	onTapSecondary func()
}

func newRowOverlay(onTap, onTapSecondary func()) *rowOverlay {
	o := &rowOverlay{onTap: onTap, onTapSecondary: onTapSecondary}
	o.FillColor = color.Transparent
	o.StrokeColor = color.Transparent
	return o
}

func (o *rowOverlay) Tapped(*fyne.PointEvent) {
	if o.onTap != nil {
		o.onTap()
	}
}

func (o *rowOverlay) TappedSecondary(*fyne.PointEvent) {
	if o.onTapSecondary != nil {
		o.onTapSecondary()
	}
}

// notifier reports outcomes to the user.
type notifier interface {
	Info(title, message string)
	Warn(message string)
	Error(err error)
}

type dialogNotifier struct {
	win fyne.Window
}

func (n dialogNotifier) Info(title, message string) { dialog.ShowInformation(title, message, n.win) }
func (n dialogNotifier) Warn(message string)        { dialog.ShowInformation(titleWarning, message, n.win) }
func (n dialogNotifier) Error(err error)            { dialog.ShowError(err, n.win) }

// browser is the main window: table buttons, the grid and the record actions.
type browser struct {
	win    fyne.Window
	store  *Store
	notify notifier
	log    *logrus.Logger

	current   string // table name, empty until a table button is pressed
	result    *Result
	selected  int // -1 when no row is selected
	colWidths []float32

	tableBtns     []*widget.Button
	addBtn        *widget.Button
	modifyBtn     *widget.Button
	deleteBtn     *widget.Button
	status        *widget.Label
	rowsContainer *fyne.Container

	showForm func(f *recordForm)
}

func newBrowser(win fyne.Window, store *Store, logger *logrus.Logger) *browser {
	b := &browser{
		win:      win,
		store:    store,
		notify:   dialogNotifier{win: win},
		log:      logger,
		selected: -1,
	}
	b.showForm = b.showFormDialog
	return b
}

// showFormDialog puts the record form in a modal dialog that the form's own
// buttons close.
func (b *browser) showFormDialog(f *recordForm) {
	d := dialog.NewCustomWithoutButtons(f.title(), f.content(), b.win)
	f.onClose = d.Hide
	d.Resize(fyne.NewSize(380, 460))
	d.Show()
}

func (b *browser) createUI() fyne.CanvasObject {
	tableRow := container.NewGridWithColumns(2)
	for _, t := range vulcanizationTables {
		btn := widget.NewButton(t.Label, func() { b.loadTable(t.Name) })
		btn.Importance = widget.HighImportance
		b.tableBtns = append(b.tableBtns, btn)
		tableRow.Add(btn)
	}

	b.status = widget.NewLabel("Таблица не выбрана")

	b.rowsContainer = container.NewVBox()
	scroll := container.NewScroll(b.rowsContainer)
	scroll.SetMinSize(fyne.NewSize(600, 300))

	b.addBtn = widget.NewButton("Добавить", b.addRecord)
	b.modifyBtn = widget.NewButton("Изменить", b.modifyRecord)
	b.deleteBtn = widget.NewButton("Удалить", b.deleteRecord)
	actions := container.NewGridWithColumns(3, b.addBtn, b.modifyBtn, b.deleteBtn)

	return container.NewBorder(container.NewVBox(tableRow, b.status), actions, nil, nil, scroll)
}

// loadTable makes name the current table and shows its rows. On a failed
// fetch the previous table stays current.
func (b *browser) loadTable(name string) {
	res, err := b.store.Fetch(name)
	if err != nil {
		b.log.WithError(err).WithField("table", name).Error("load table")
		b.notify.Error(err)
		return
	}

	if name != b.current || len(b.colWidths) != len(res.Columns) {
		b.colWidths = make([]float32, len(res.Columns))
		for i := range b.colWidths {
			b.colWidths[i] = defaultColWidth
		}
	}
	b.current = name
	b.result = res
	b.selected = -1

	label := name
	if def, ok := lookupTable(name); ok {
		label = def.Label
	}
	b.status.SetText(fmt.Sprintf("%s, записей: %d", label, len(res.Rows)))
	b.render()
}

func (b *browser) selectRow(i int) {
	if b.result == nil || i < 0 || i >= len(b.result.Rows) {
		return
	}
	b.selected = i
	b.render()
}

func (b *browser) resizeColumn(ci int, dx float32) {
	w := float32(math.Max(minColWidth, float64(b.colWidths[ci]+dx)))
	if w != b.colWidths[ci] {
		b.colWidths[ci] = w
		b.render()
	}
}

// render rebuilds the header and one line per row of the current result.
func (b *browser) render() {
	b.rowsContainer.Objects = nil
	if b.result == nil {
		b.rowsContainer.Refresh()
		return
	}

	header := container.NewHBox()
	for ci, c := range b.result.Columns {
		label := widget.NewLabelWithStyle(c, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
		label.Truncation = fyne.TextTruncateEllipsis
		cell := container.NewStack(canvas.NewRectangle(headerColor), label)
		wrap := container.New(layout.NewGridWrapLayout(fyne.NewSize(b.colWidths[ci], rowHeight)), cell)
		res := newColResizer(func(dx float32) { b.resizeColumn(ci, dx) })
		header.Add(container.NewHBox(wrap, res))
	}
	b.rowsContainer.Add(header)

	// row cells span the header cell plus its resizer
	pad := resizerWidth + theme.Padding()
	for ri, row := range b.result.Rows {
		bg := evenRowColor
		if ri%2 == 1 {
			bg = oddRowColor
		}
		if ri == b.selected {
			bg = selectedColor
		}

		line := container.NewHBox()
		for ci, v := range row {
			label := widget.NewLabel(v)
			label.Truncation = fyne.TextTruncateEllipsis
			overlay := newRowOverlay(
				func() { b.selectRow(ri) },
				func() {
					b.selectRow(ri)
					b.modifyRecord()
				},
			)
			cell := container.NewStack(canvas.NewRectangle(bg), label, overlay)
			line.Add(container.New(layout.NewGridWrapLayout(fyne.NewSize(b.colWidths[ci]+pad, rowHeight)), cell))
		}
		b.rowsContainer.Add(line)
	}
	b.rowsContainer.Refresh()
}

// selectedRow returns the selected grid row, or nil with a warning shown.
func (b *browser) selectedRow(warning string) []string {
	if b.result == nil || b.selected < 0 || b.selected >= len(b.result.Rows) {
		b.notify.Warn(warning)
		return nil
	}
	return b.result.Rows[b.selected]
}

func (b *browser) addRecord() {
	if b.current == "" {
		b.notify.Warn(msgSelectTable)
		return
	}
	table := b.current

	columns, err := b.store.Columns(table)
	if err != nil {
		b.notify.Error(err)
		return
	}

	form := newRecordForm(table, columns, func(values []string) error {
		if err := b.store.Insert(table, columns, values); err != nil {
			b.log.WithError(err).WithField("table", table).Error("add record")
			b.notify.Error(err)
			return err
		}
		b.notify.Info(titleSuccess, msgAdded)
		b.loadTable(table)
		return nil
	})
	b.showForm(form)
}

func (b *browser) modifyRecord() {
	if b.current == "" {
		b.notify.Warn(msgSelectTable)
		return
	}
	row := b.selectedRow(msgSelectForModify)
	if row == nil {
		return
	}
	table := b.current
	columns := b.result.Columns
	keyColumn, keyValue := columns[0], row[0]

	form := newRecordForm(table, columns, func(values []string) error {
		setCols, setVals := changedFields(columns, row, values)
		if len(setCols) == 0 {
			b.notify.Info(titleSuccess, msgUnchanged)
			return nil
		}
		if err := b.store.Update(table, setCols, setVals, keyColumn, keyValue); err != nil {
			b.notify.Error(err)
			return err
		}
		b.notify.Info(titleSuccess, msgModified)
		b.loadTable(table)
		return nil
	})
	form.fill(row)
	form.lockKey()
	b.showForm(form)
}

// changedFields keeps the non-key columns whose text differs from the loaded
// row. Untouched cells are left alone, so a NULL the grid shows as empty
// stays NULL.
func changedFields(columns, row, values []string) (cols, vals []string) {
	for i := 1; i < len(columns) && i < len(values); i++ {
		if i < len(row) && values[i] == row[i] {
			continue
		}
		cols = append(cols, columns[i])
		vals = append(vals, values[i])
	}
	return cols, vals
}

func (b *browser) deleteRecord() {
	if b.current == "" {
		b.notify.Warn(msgSelectTable)
		return
	}
	row := b.selectedRow(msgSelectForDelete)
	if row == nil {
		return
	}
	table := b.current

	if err := b.store.Delete(table, b.result.Columns[0], row[0]); err != nil {
		b.log.WithError(err).WithField("table", table).Error("delete record")
		b.notify.Error(err)
		return
	}
	b.notify.Info(titleSuccess, msgDeleted)
	b.loadTable(table)
}
