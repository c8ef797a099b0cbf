package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const formTitle = "Добавить/Изменить запись"

// recordForm is the add/modify dialog body: one entry per column.
// It does not talk to the database; onSave decides what saving means.
type recordForm struct {
	table   string
	columns []string
	inputs  []*widget.Entry

	saveBtn   *widget.Button
	cancelBtn *widget.Button

	// onSave receives the entry texts in column order. A nil error closes
	// the form, an error keeps it open so the user can correct the values.
	onSave  func(values []string) error
	onClose func()
}

func newRecordForm(table string, columns []string, onSave func(values []string) error) *recordForm {
	f := &recordForm{
		table:   table,
		columns: columns,
		inputs:  make([]*widget.Entry, len(columns)),
		onSave:  onSave,
	}
	for i := range columns {
		f.inputs[i] = widget.NewEntry()
	}
	f.saveBtn = widget.NewButton("Сохранить", func() { f.save() })
	f.saveBtn.Importance = widget.HighImportance
	f.cancelBtn = widget.NewButton("Отмена", func() { f.close() })
	return f
}

// title names the dialog after the table being edited.
func (f *recordForm) title() string {
	if def, ok := lookupTable(f.table); ok {
		return formTitle + ": " + def.Label
	}
	if f.table != "" {
		return formTitle + ": " + f.table
	}
	return formTitle
}

// fill pre-fills the entries from a grid row.
func (f *recordForm) fill(row []string) {
	for i, e := range f.inputs {
		if i < len(row) {
			e.SetText(row[i])
		}
	}
}

// lockKey makes the key column read-only; updates never write it anyway.
func (f *recordForm) lockKey() {
	if len(f.inputs) > 0 {
		f.inputs[0].Disable()
	}
}

func (f *recordForm) values() []string {
	out := make([]string, len(f.inputs))
	for i, e := range f.inputs {
		out[i] = e.Text
	}
	return out
}

func (f *recordForm) save() {
	if f.onSave == nil {
		return
	}
	if err := f.onSave(f.values()); err != nil {
		return
	}
	f.close()
}

func (f *recordForm) close() {
	if f.onClose != nil {
		f.onClose()
	}
}

func (f *recordForm) content() fyne.CanvasObject {
	fields := container.NewVBox()
	for i, c := range f.columns {
		fields.Add(widget.NewLabelWithStyle(c+":", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
		fields.Add(f.inputs[i])
	}
	buttons := container.NewHBox(layout.NewSpacer(), f.cancelBtn, f.saveBtn)
	return container.NewBorder(nil, buttons, nil, nil, container.NewVScroll(fields))
}
