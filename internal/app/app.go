// Package app is the desktop front end: it feeds keyboard state to the tick
// driver and draws the world with ebiten.
package app

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/ugaemi/ghostlight/internal/driver"
	"github.com/ugaemi/ghostlight/internal/game"
	"github.com/ugaemi/ghostlight/internal/view"
)

const fogSteps = 12

var (
	colBackground = color.RGBA{R: 18, G: 16, B: 22, A: 255}
	colFloor      = color.RGBA{R: 46, G: 42, B: 52, A: 255}
	colWall       = color.RGBA{R: 92, G: 84, B: 104, A: 255}
	colObstacle   = color.RGBA{R: 120, G: 96, B: 72, A: 255}
	colDoorway    = color.RGBA{R: 70, G: 62, B: 58, A: 255}
	colPlayer     = color.RGBA{R: 240, G: 220, B: 150, A: 255}
	colRemote     = color.RGBA{R: 130, G: 200, B: 240, A: 255}
	colGhost      = color.RGBA{R: 200, G: 210, B: 230, A: 200}
	colGhostChase = color.RGBA{R: 240, G: 90, B: 90, A: 230}
	colShield     = color.RGBA{R: 110, G: 220, B: 140, A: 255}
	colSpeed      = color.RGBA{R: 250, G: 190, B: 60, A: 255}
)

// Builder creates the driver once the map has loaded.
type Builder func(geo *game.Geometry) *driver.Driver

// Game implements ebiten.Game.
type Game struct {
	width, height int

	pending <-chan *game.Geometry
	build   Builder
	drv     *driver.Driver

	fog  *ebiten.Image
	last time.Time
}

// New creates the front end. The map arrives on pending; until then the
// game shows a loading screen and does not tick.
func New(width, height int, pending <-chan *game.Geometry, build Builder) *Game {
	return &Game{
		width:   width,
		height:  height,
		pending: pending,
		build:   build,
	}
}

// Driver returns the running driver, or nil while the map is loading.
func (g *Game) Driver() *driver.Driver {
	return g.drv
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.drv == nil {
		select {
		case geo := <-g.pending:
			g.drv = g.build(geo)
			g.last = time.Now()
		default:
		}
		return nil
	}

	now := time.Now()
	dt := float64(now.Sub(g.last)) / float64(time.Millisecond)
	g.last = now
	g.drv.Step(readInput(), dt)
	return nil
}

// readInput snapshots the movement keys: arrows or WASD, shift to sprint.
func readInput() game.Input {
	return game.Input{
		Up:     ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		Down:   ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		Left:   ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right:  ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Sprint: ebiten.IsKeyPressed(ebiten.KeyShift),
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)
	if g.drv == nil {
		ebitenutil.DebugPrintAt(screen, "loading map...", g.width/2-40, g.height/2)
		return
	}

	w := g.drv.World
	p := view.NewProjection(w)

	g.drawMap(screen, w, p)
	g.drawEntities(screen, w, p)
	g.drawFog(screen, w.Light())
	g.drawHUD(screen, w)
}

func (g *Game) drawMap(screen *ebiten.Image, w *game.World, p view.Projection) {
	x, y, mw, mh := p.Rect(game.Rect{Width: w.Geo.Width, Height: w.Geo.Height})
	vector.FillRect(screen, x, y, mw, mh, colFloor, false)

	fill := func(rects []game.Rect, c color.Color) {
		for _, r := range rects {
			x, y, rw, rh := p.Rect(r)
			if view.Visible(x, y, rw, rh, g.width, g.height) {
				vector.FillRect(screen, x, y, rw, rh, c, false)
			}
		}
	}
	fill(w.Geo.Doorways, colDoorway)
	fill(w.Geo.Walls, colWall)
	fill(w.Geo.Obstacles, colObstacle)
}

func (g *Game) drawEntities(screen *ebiten.Image, w *game.World, p view.Projection) {
	for _, pu := range w.PowerUps {
		if !pu.Active {
			continue
		}
		c := colShield
		if pu.Type == game.PowerUpSpeed {
			c = colSpeed
		}
		cx, cy, r := p.Circle(pu.Entity)
		vector.FillCircle(screen, cx, cy, r, c, true)
	}

	for _, rp := range w.Remotes() {
		x, y, size := p.Square(game.Entity{X: rp.X, Y: rp.Y, Size: game.PlayerSize})
		vector.FillRect(screen, x, y, size, size, colRemote, false)
		if rp.Name != "" {
			ebitenutil.DebugPrintAt(screen, rp.Name, int(x), int(y)-14)
		}
	}

	x, y, size := p.Square(w.Player.Entity)
	vector.FillRect(screen, x, y, size, size, colPlayer, false)

	for _, gh := range w.Ghosts {
		c := colGhost
		if gh.State == game.GhostChase {
			c = colGhostChase
		}
		cx, cy, r := p.Circle(gh.Entity)
		vector.FillCircle(screen, cx, cy, r, c, true)
	}
}

// drawFog darkens the screen except around the player. The light is cut out
// of a darkness layer with destination-out blending.
func (g *Game) drawFog(screen *ebiten.Image, l game.Light) {
	if g.fog == nil || g.fog.Bounds().Dx() != g.width || g.fog.Bounds().Dy() != g.height {
		g.fog = ebiten.NewImage(g.width, g.height)
	}
	g.fog.Fill(color.RGBA{A: uint8(math.Round(l.Darkness * 255))})

	cx, cy := float32(l.CenterX), float32(l.CenterY)
	for _, ring := range view.FogRings(l, fogSteps) {
		var path vector.Path
		path.Arc(cx, cy, float32(ring.Radius), 0, 2*math.Pi, vector.Clockwise)
		path.Close()
		g.cut(&path, ring.Alpha)
	}

	if pts := view.ConePoints(l, 24); pts != nil {
		var path vector.Path
		path.MoveTo(float32(pts[0][0]), float32(pts[0][1]))
		for _, pt := range pts[1:] {
			path.LineTo(float32(pt[0]), float32(pt[1]))
		}
		path.Close()
		g.cut(&path, 0.6)
	}

	screen.DrawImage(g.fog, nil)
}

func (g *Game) cut(path *vector.Path, alpha float64) {
	opts := &vector.DrawPathOptions{AntiAlias: true, Blend: ebiten.BlendDestinationOut}
	opts.ColorScale.ScaleAlpha(float32(alpha))
	vector.FillPath(g.fog, path, &vector.FillOptions{}, opts)
}

func (g *Game) drawHUD(screen *ebiten.Image, w *game.World) {
	rtt := ""
	if d := g.drv.RTT(); d > 0 {
		rtt = d.Round(time.Millisecond).String()
	}
	for i, line := range view.HUD(w, len(w.Remotes()), rtt) {
		ebitenutil.DebugPrintAt(screen, line, 8, 8+i*16)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
