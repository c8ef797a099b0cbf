package main

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordFormCollectsValuesInColumnOrder(t *testing.T) {
	test.NewTempApp(t)

	var got []string
	f := newRecordForm(samplesTable, []string{"код_образца", "наименование", "описание"}, func(values []string) error {
		got = values
		return nil
	})
	closed := false
	f.onClose = func() { closed = true }

	f.inputs[0].SetText("7")
	f.inputs[2].SetText("заметка")
	test.Tap(f.saveBtn)

	assert.Equal(t, []string{"7", "", "заметка"}, got)
	assert.True(t, closed)
}

func TestRecordFormStaysOpenOnError(t *testing.T) {
	test.NewTempApp(t)

	f := newRecordForm(samplesTable, []string{"код_образца"}, func([]string) error {
		return errors.New("constraint failed")
	})
	closed := false
	f.onClose = func() { closed = true }

	test.Tap(f.saveBtn)
	assert.False(t, closed)
}

func TestRecordFormCancel(t *testing.T) {
	test.NewTempApp(t)

	saved := false
	f := newRecordForm(samplesTable, []string{"код_образца"}, func([]string) error {
		saved = true
		return nil
	})
	closed := false
	f.onClose = func() { closed = true }

	test.Tap(f.cancelBtn)
	assert.True(t, closed)
	assert.False(t, saved)
}

func TestRecordFormFillAndLockKey(t *testing.T) {
	test.NewTempApp(t)

	f := newRecordForm(samplesTable, []string{"код_образца", "наименование", "описание"}, nil)
	f.fill([]string{"3", "СКИ-3"})
	f.lockKey()

	require.Len(t, f.inputs, 3)
	assert.Equal(t, []string{"3", "СКИ-3", ""}, f.values())
	assert.True(t, f.inputs[0].Disabled())
	assert.False(t, f.inputs[1].Disabled())

	// one label and one entry per column
	body, ok := f.content().(*fyne.Container)
	require.True(t, ok)
	scroll, ok := body.Objects[0].(*container.Scroll)
	require.True(t, ok)
	fields, ok := scroll.Content.(*fyne.Container)
	require.True(t, ok)
	assert.Len(t, fields.Objects, 6)
}

func TestRecordFormTitleNamesTable(t *testing.T) {
	test.NewTempApp(t)

	assert.Equal(t, formTitle+": Наименование экспериментальных образцов",
		newRecordForm(samplesTable, nil, nil).title())
	assert.Equal(t, formTitle+": замеры", newRecordForm("замеры", nil, nil).title())
	assert.Equal(t, formTitle, newRecordForm("", nil, nil).title())
}
