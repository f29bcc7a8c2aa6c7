package renderer

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"
)

// Game owns the camera for the whole session. ebiten runs Update and Draw
// on the same goroutine, so every camera mutation of a frame happens
// before that frame's projections.
type Game struct {
	camera     *Camera
	controller *Controller
	keyboard   *KeyboardInput
	model      *Model
	log        *zap.Logger

	viewport Viewport
	points   []ScreenPoint
}

func NewGame(cfg Config, model *Model, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if model == nil {
		model = DefaultScene()
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("model %q: %w", model.Name, err)
	}

	cam, err := cfg.NewCamera()
	if err != nil {
		return nil, err
	}

	g := &Game{
		camera:     cam,
		controller: NewController(cam, cfg.MovementSpeed, degreesToRadians(cfg.RotationSpeed), logger.Named("controller")),
		keyboard:   NewKeyboardInput(nil),
		model:      model,
		log:        logger,
		viewport:   Viewport{Width: cfg.Window.Width, Height: cfg.Window.Height},
		points:     make([]ScreenPoint, 0, len(model.Vertices)),
	}

	logger.Info("scene ready",
		zap.String("model", model.Name),
		zap.Int("vertices", len(model.Vertices)),
		zap.Int("edges", len(model.Edges)),
		zap.Stringer("projection", cam.ProjectionMode()),
	)
	return g, nil
}

func (g *Game) Camera() *Camera { return g.camera }

func (g *Game) Update() error {
	g.keyboard.Poll()
	g.controller.Step(g.keyboard)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(BackgroundColor)

	g.points = ProjectVertices(g.camera, g.viewport, g.model.Vertices, g.points)
	DrawEdges(screen, g.points, g.model.Edges, EdgeColor)
	DrawPoints(screen, g.points, PointColor)

	pos := g.camera.Position()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  pos (%.2f, %.2f, %.2f)  FPS: %0.2f",
		g.camera.ProjectionMode(), pos.X, pos.Y, pos.Z, ebiten.ActualFPS()))
}

// Layout tracks the window size so the canvas fills it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.viewport.Width || outsideHeight != g.viewport.Height {
		g.log.Debug("viewport resized", zap.Int("width", outsideWidth), zap.Int("height", outsideHeight))
		g.viewport = Viewport{Width: outsideWidth, Height: outsideHeight}
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(cfg Config, model *Model, logger *zap.Logger) error {
	g, err := NewGame(cfg, model, logger)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.TPS)

	return ebiten.RunGame(g)
}
