// Example opens a window and bridges a widget tree over it: a draggable
// panel with a label and tooltip, and a virtualized list fed a few
// hundred rows.
//
// Prerequisites: a desktop with OpenGL 4.1 and the usual GLFW build
// dependencies (X11 headers on Linux).
//
//	go run ./example/
package main

import (
	"fmt"
	"os"

	"github.com/lite-xl/widgets"
	"github.com/lite-xl/widgets/backend/opengl"
)

const (
	windowWidth  = 800
	windowHeight = 600
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	win, err := opengl.NewWindow("widgets example", windowWidth, windowHeight)
	if err != nil {
		return err
	}
	defer win.Destroy()

	style := widgets.DefaultStyle()
	style.Font = opengl.NewFont(1)

	root := widgets.New(nil, &style, win.Renderer())
	root.SetSize(windowWidth, windowHeight)
	root.SetPosition(0, 0)

	panel := widgets.New(root, nil, nil)
	panel.Draggable = true
	panel.SetSize(220, 60)
	panel.SetPosition(40, 40)
	panel.SetBorder(1, widgets.ColorGray)
	panel.SetLabel(
		widgets.Text("drag me"),
		widgets.LineBreak(),
		widgets.WithColor(widgets.ColorLightGray),
		widgets.Text("a movable panel"),
	)
	panel.SetTooltip(widgets.Text("hold the left button and move"))

	list := widgets.NewListBox(root, nil, nil)
	list.SetSize(420, 400)
	list.SetPosition(300, 40)
	list.SetBorder(1, widgets.ColorDarkGray)
	list.AddColumn("id", 40, false)
	list.AddColumn("name", 120, true)
	list.AddColumn("status", 80, false)
	for i := 0; i < 300; i++ {
		status := "idle"
		color := widgets.ColorLightGray
		if i%7 == 0 {
			status = "busy"
			color = widgets.RGBA(0xf0, 0xa0, 0x40, 0xff)
		}
		list.AddRow(i,
			widgets.Text(fmt.Sprintf("%d", i)),
			widgets.ColumnEnd(),
			widgets.Text(fmt.Sprintf("item %d", i)),
			widgets.ColumnEnd(),
			widgets.WithColor(color),
			widgets.Text(status),
		)
	}
	list.OnRowClick = func(index int, data any) {
		fmt.Printf("clicked row %d (payload %v)\n", index, data)
	}

	bridge, err := widgets.InstallBridge(root, win)
	if err != nil {
		return err
	}
	defer bridge.Uninstall()

	root.Show()
	win.Run()
	return nil
}
