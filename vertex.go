package phong

// VertexStage transforms one vertex to clip space. Position and normal are
// forwarded untouched for interpolation; the normal is not corrected for
// non-uniform scale, so hosts that need that must bake it into the mesh.
//
// It panics with a *ContractError when a transform uniform is missing.
func VertexStage(in VertexInput, u Uniforms) VertexOutput {
	view := mustMat4(u, "vertex", UniformViewMatrix)
	proj := mustMat4(u, "vertex", UniformProjectionMatrix)

	return VertexOutput{
		ClipPosition: transformPoint(proj.Mul4(view), in.Position),
		Position:     in.Position,
		Normal:       in.Normal,
	}
}
