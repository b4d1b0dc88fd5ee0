package codegen

// Шаблоны используют разделители [[ ]], потому что JSX и Vue сами
// занимают фигурные скобки.
const templateSource = `
[[- define "react.loader" -]]
const [[.Name]] = (props) => (
  <ContentLoader [[- if .RTL]]
    rtl[[end]]
    speed={[[.Speed]]}
    width={[[.Width]]}
    height={[[.Height]]}
    viewBox="[[.ViewBox]]"
    backgroundColor="[[.Background]]"
    foregroundColor="[[.Foreground]]"
    {...props}
  >
[[.Markup]]
  </ContentLoader>
)
[[- end]]

[[- define "reactDom" -]]
[[- if .Imports]]import React from "react"
import ContentLoader from "react-content-loader"

[[end -]]
[[template "react.loader" .]]

export default [[.Name]]
[[end]]

[[- define "live" -]]
[[template "react.loader" .]]

render(<[[.Name]] />)
[[end]]

[[- define "reactNative" -]]
[[- if .Imports]]import React from "react"
import ContentLoader[[if .Components]], { [[.Components]] }[[end]] from "react-content-loader/native"

[[end -]]
[[template "react.loader" .]]

export default [[.Name]]
[[end]]

[[- define "vue" -]]
<template>
  <ContentLoader
    viewBox="[[.ViewBox]]"
    :width="[[.Width]]"
    :height="[[.Height]]"
    :speed="[[.Speed]]"
    primaryColor="[[.Background]]"
    secondaryColor="[[.Foreground]]"[[if .RTL]]
    :rtl="true"[[end]]
  >
[[.Markup]]
  </ContentLoader>
</template>
[[- if .Imports]]

<script>
import { ContentLoader } from "vue-content-loader"

export default {
  components: { ContentLoader }
}
</script>
[[- end]]
[[end]]

[[- define "angular" -]]
<content-loader
  viewBox="[[.ViewBox]]"
  [style.width.px]="[[.Width]]"
  [style.height.px]="[[.Height]]"
  [speed]="[[.Speed]]"[[if .RTL]]
  [rtl]="true"[[end]]
  backgroundColor="[[.Background]]"
  foregroundColor="[[.Foreground]]"
>
[[.Markup]]
</content-loader>
[[end]]

[[- define "qwik" -]]
[[- if .Imports]]import { component$ } from "@builder.io/qwik"
import { ContentLoader } from "qwik-content-loader"

[[end -]]
export const [[.Name]] = component$(() => (
  <ContentLoader [[- if .RTL]]
    rtl[[end]]
    speed={[[.Speed]]}
    width={[[.Width]]}
    height={[[.Height]]}
    viewBox="[[.ViewBox]]"
    backgroundColor="[[.Background]]"
    foregroundColor="[[.Foreground]]"
  >
[[.Markup]]
  </ContentLoader>
))
[[end]]

[[- define "svg" -]]
<svg
  role="img"
  width="[[.Width]]"
  height="[[.Height]]"
  aria-labelledby="loading-aria"
  viewBox="[[.ViewBox]]"
  preserveAspectRatio="none"[[if .RTL]]
  style="transform: scaleX(-1)"[[end]]
>
  <title id="loading-aria">Loading...</title>
  <rect
    x="0"
    y="0"
    width="100%"
    height="100%"
    clip-path="url(#clip-path)"
    style='fill: url("#fill");'
  ></rect>
  <defs>
    <clipPath id="clip-path">
[[.Markup]]
    </clipPath>
    <linearGradient id="fill">
      <stop offset="0.599964" stop-color="[[.Background]]" stop-opacity="1">
        <animate attributeName="offset" values="-2; -2; 1" keyTimes="0; 0.25; 1" dur="[[.Speed]]s" repeatCount="indefinite"></animate>
      </stop>
      <stop offset="1.59996" stop-color="[[.Foreground]]" stop-opacity="1">
        <animate attributeName="offset" values="-1; -1; 2" keyTimes="0; 0.25; 1" dur="[[.Speed]]s" repeatCount="indefinite"></animate>
      </stop>
      <stop offset="2.59996" stop-color="[[.Background]]" stop-opacity="1">
        <animate attributeName="offset" values="0; 0; 3" keyTimes="0; 0.25; 1" dur="[[.Speed]]s" repeatCount="indefinite"></animate>
      </stop>
    </linearGradient>
  </defs>
</svg>
[[end]]
`
