package export

import (
	"fmt"
	"os"

	"github.com/df07/go-spray-simulator/pkg/spray"
)

// SaveScene writes a minimal USDA scene: the wall quad with the paint
// texture bound through a UsdPreviewSurface material, the nozzle as a small
// sphere, and a camera looking at the wall. texturePath is referenced
// relative to the scene file.
func SaveScene(filename string, grid *spray.WallGrid, nozzle spray.NozzleState, texturePath string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating scene file: %w", err)
	}
	defer file.Close()

	halfW := grid.Width() / 2
	halfH := grid.Height() / 2

	fmt.Fprintf(file, "#usda 1.0\n(\n    defaultPrim = \"Wall\"\n    upAxis = \"Y\"\n)\n\n")

	fmt.Fprintf(file, "def Mesh \"Wall\"\n{\n")
	fmt.Fprintf(file, "    point3f[] points = [(%g, %g, 0), (%g, %g, 0), (%g, %g, 0), (%g, %g, 0)]\n",
		-halfW, -halfH, halfW, -halfH, halfW, halfH, -halfW, halfH)
	fmt.Fprintf(file, "    int[] faceVertexIndices = [0, 1, 2, 0, 2, 3]\n")
	fmt.Fprintf(file, "    int[] faceVertexCounts = [3, 3]\n")
	fmt.Fprintf(file, "    texCoord2f[] primvars:st = [(0, 0), (1, 0), (1, 1), (0, 1)] (\n        interpolation = \"vertex\"\n    )\n")
	fmt.Fprintf(file, "    rel material:binding = </PaintMaterial>\n")
	fmt.Fprintf(file, "}\n\n")

	fmt.Fprintf(file, "def Material \"PaintMaterial\"\n{\n")
	fmt.Fprintf(file, "    token outputs:surface.connect = </PaintMaterial/PaintShader.outputs:surface>\n\n")
	fmt.Fprintf(file, "    def Shader \"PaintShader\"\n    {\n")
	fmt.Fprintf(file, "        uniform token info:id = \"UsdPreviewSurface\"\n")
	fmt.Fprintf(file, "        color3f inputs:diffuseColor.connect = </PaintMaterial/TextureReader.outputs:rgb>\n")
	fmt.Fprintf(file, "        token outputs:surface\n")
	fmt.Fprintf(file, "    }\n\n")
	fmt.Fprintf(file, "    def Shader \"TextureReader\"\n    {\n")
	fmt.Fprintf(file, "        uniform token info:id = \"UsdUVTexture\"\n")
	fmt.Fprintf(file, "        asset inputs:file = @%s@\n", texturePath)
	fmt.Fprintf(file, "        float3 outputs:rgb\n")
	fmt.Fprintf(file, "    }\n")
	fmt.Fprintf(file, "}\n\n")

	fmt.Fprintf(file, "def Sphere \"SprayNozzle\"\n{\n")
	fmt.Fprintf(file, "    double radius = 0.05\n")
	fmt.Fprintf(file, "    double3 xformOp:translate = (%g, %g, %g)\n",
		nozzle.Position.X, nozzle.Position.Y, nozzle.Position.Z)
	fmt.Fprintf(file, "    uniform token[] xformOpOrder = [\"xformOp:translate\"]\n")
	fmt.Fprintf(file, "}\n\n")

	fmt.Fprintf(file, "def Camera \"Camera\"\n{\n")
	fmt.Fprintf(file, "    double3 xformOp:translate = (0, 0, 3)\n")
	fmt.Fprintf(file, "    uniform token[] xformOpOrder = [\"xformOp:translate\"]\n")
	fmt.Fprintf(file, "}\n")

	return nil
}
